package tui

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//nolint:gochecknoglobals // printers are safe for concurrent use
var printer = message.NewPrinter(language.English)

// Number formats v with a fixed number of decimals and thousands separators.
func Number(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return printer.Sprintf("%.*f", decimals, v)
}

// Duration formats a step duration given in minutes: whole days from one
// day up, hours and minutes below.
func Duration(minutes float64) string {
	const perDay = 24 * 60
	switch {
	case minutes >= perDay:
		days := minutes / perDay
		if days == 1 {
			return "1 day"
		}
		if days == math.Trunc(days) {
			return printer.Sprintf("%d days", int(days))
		}
		return printer.Sprintf("%.1f days", days)
	case minutes >= 60:
		h := int(minutes) / 60
		m := int(minutes) % 60
		if m == 0 {
			return fmt.Sprintf("%d h", h)
		}
		return fmt.Sprintf("%d h %02d min", h, m)
	default:
		return fmt.Sprintf("%d min", int(minutes))
	}
}
