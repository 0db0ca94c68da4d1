// Package procedure generates the ordered brew day and cellar steps for a
// recipe. Step content branches on brewing method, equipment and computed
// volumes; the sequence itself is fixed.
package procedure

import "fmt"

// LineKind tags a detail line.
type LineKind int

// Detail line kinds.
const (
	KindText LineKind = iota
	KindHeading
	KindSpacer
)

var kindNames = [...]string{"text", "heading", "spacer"} //nolint:gochecknoglobals // immutable names

// String returns the wire name of k.
func (k LineKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("LineKind(%d)", int(k))
}

// MarshalText encodes k by name.
func (k LineKind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown line kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText decodes a kind name.
func (k *LineKind) UnmarshalText(b []byte) error {
	for i, n := range kindNames {
		if n == string(b) {
			*k = LineKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown line kind %q", string(b))
}

// Line is one entry of a step's details. Headings introduce a sub-section and
// spacers carry no text.
type Line struct {
	Kind LineKind `json:"kind"`
	Text string   `json:"text,omitempty"`
}

// Text returns a plain instruction line.
func Text(s string) Line { return Line{Kind: KindText, Text: s} }

// Textf formats a plain instruction line.
func Textf(format string, args ...any) Line {
	return Line{Kind: KindText, Text: fmt.Sprintf(format, args...)}
}

// Heading returns a sub-section heading.
func Heading(s string) Line { return Line{Kind: KindHeading, Text: s} }

// Spacer returns a layout gap.
func Spacer() Line { return Line{Kind: KindSpacer} }
