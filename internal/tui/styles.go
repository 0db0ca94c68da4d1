// Package tui renders brewplan reports for the terminal with lipgloss and
// drives the interactive procedure stepper with bubbletea.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	ColorHeader    = lipgloss.Color("214")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("255")
	ColorMuted     = lipgloss.Color("241")
	ColorBorder    = lipgloss.Color("238")
	ColorHighlight = lipgloss.Color("220")
	ColorOK        = lipgloss.Color("42")
	ColorInfo      = lipgloss.Color("39")
	ColorWarning   = lipgloss.Color("214")
	ColorDanger    = lipgloss.Color("196")
)

// Icons.
const (
	IconOK      = "✓"
	IconOut     = "✗"
	IconBullet  = "•"
	IconInfo    = "ℹ"
	IconWarn    = "⚠"
	IconDanger  = "⛔"
	IconChecked = "[x]"
	IconOpen    = "[ ]"
	IconSwatch  = "██"
)

// Options tune rendering.
type Options struct {
	// Styled enables colors and text attributes. Off when stdout is not a
	// terminal.
	Styled bool
	// Expert shows loss breakdowns and hides beginner tips.
	Expert bool
}

type theme struct {
	title   lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
	ok      lipgloss.Style
	info    lipgloss.Style
	warn    lipgloss.Style
	danger  lipgloss.Style
	heading lipgloss.Style
	styled  bool
}

func newTheme(opts Options) theme {
	if !opts.Styled {
		plain := lipgloss.NewStyle()
		return theme{
			title: plain, header: plain, label: plain, value: plain, muted: plain,
			ok: plain, info: plain, warn: plain, danger: plain, heading: plain,
		}
	}
	return theme{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeader).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),
		header:  lipgloss.NewStyle().Foreground(ColorHeader).Bold(true),
		label:   lipgloss.NewStyle().Foreground(ColorLabel),
		value:   lipgloss.NewStyle().Foreground(ColorValue).Bold(true),
		muted:   lipgloss.NewStyle().Foreground(ColorMuted).Italic(true),
		ok:      lipgloss.NewStyle().Foreground(ColorOK),
		info:    lipgloss.NewStyle().Foreground(ColorInfo),
		warn:    lipgloss.NewStyle().Foreground(ColorWarning).Bold(true),
		danger:  lipgloss.NewStyle().Foreground(ColorDanger).Bold(true),
		heading: lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true).Underline(true),
		styled:  true,
	}
}
