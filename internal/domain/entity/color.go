package entity

import "strings"

// Color is the closed set of favourite colors a user may pick.
type Color string

const (
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
)

var colors = []Color{ColorRed, ColorOrange, ColorYellow, ColorGreen, ColorBlue, ColorPurple}

// Colors returns the allowed colors in display order.
func Colors() []Color {
	out := make([]Color, len(colors))
	copy(out, colors)
	return out
}

// ParseColor normalizes s to lowercase and reports whether it is an allowed color.
func ParseColor(s string) (Color, bool) {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

func (c Color) Valid() bool {
	for _, allowed := range colors {
		if c == allowed {
			return true
		}
	}
	return false
}

// ColorChoices renders the allowed colors as "red, orange, ...".
func ColorChoices() string {
	names := make([]string, len(colors))
	for i, c := range colors {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
