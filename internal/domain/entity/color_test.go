package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	c, ok := ParseColor("Red")
	assert.True(t, ok)
	assert.Equal(t, ColorRed, c)

	c, ok = ParseColor(" BLUE ")
	assert.True(t, ok)
	assert.Equal(t, ColorBlue, c)

	c, ok = ParseColor("gold")
	assert.False(t, ok)
	assert.Equal(t, Color("gold"), c)
}

func TestColorChoices(t *testing.T) {
	assert.Equal(t, "red, orange, yellow, green, blue, purple", ColorChoices())
	assert.Len(t, Colors(), 6)
}

func TestParseSeverity(t *testing.T) {
	s, ok := ParseSeverity("warning")
	assert.True(t, ok)
	assert.Equal(t, SeverityWarning, s)

	_, ok = ParseSeverity("DEBUG")
	assert.False(t, ok)
}
