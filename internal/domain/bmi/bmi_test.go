package bmi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculate_TruncatesToTwoDecimals(t *testing.T) {
	cases := []struct {
		name           string
		weight, height float64
		want           float64
	}{
		{"petra", 65.0, 1.6, 25.39},
		{"torsten", 61.3, 1.83, 18.3},
		{"hans", 75.7, 1.85, 22.11},
		{"hugo", 78.0, 1.8, 24.07},
		{"peter", 90.0, 1.85, 26.29},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Calculate(tc.weight, tc.height), 1e-9)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "25.39", Format(25.39))
	assert.Equal(t, "18.3", Format(18.3))
	assert.Equal(t, "20", Format(20))
}

func TestAge(t *testing.T) {
	birth := date(1999, time.December, 13)
	assert.Equal(t, 23, Age(birth, date(2023, time.December, 12)))
	assert.Equal(t, 24, Age(birth, date(2023, time.December, 13)))
	assert.Equal(t, 0, Age(birth, date(1990, time.January, 1)))
}

func TestCategory_AgeBrackets(t *testing.T) {
	assert.Equal(t, Underweight, Category(20, 18.9))
	assert.Equal(t, NormalWeight, Category(20, 24))
	assert.Equal(t, Overweight, Category(20, 25.39))
	assert.Equal(t, Obesity, Category(20, 29.5))

	// the same BMI is normal for an older person
	assert.Equal(t, NormalWeight, Category(40, 25.39))
	assert.Equal(t, Underweight, Category(70, 23.9))
	assert.Equal(t, NormalWeight, Category(70, 29))
}

func TestDescribe(t *testing.T) {
	c := NewCalculator(func() time.Time { return date(2024, time.June, 1) })

	got := c.Describe(date(1999, time.December, 13), 65.0, 1.6)
	assert.Equal(t, "User has a BMI of 25.39 and therewith he has overweight.", got)

	got = c.Describe(date(1988, time.December, 12), 78.0, 1.8)
	assert.Equal(t, "User has a BMI of 24.07 and therewith he has normal weight.", got)
}
