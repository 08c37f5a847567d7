// Package bmi computes the body-mass index of a user and describes it in
// terms of an age-adjusted weight category.
package bmi

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

const (
	Underweight  = "underweight"
	NormalWeight = "normal weight"
	Overweight   = "overweight"
	Obesity      = "obesity"
)

// MessageFormat is filled with the formatted BMI and the category.
const MessageFormat = "User has a BMI of %s and therewith he has %s."

// bracket holds the normal BMI range for ages up to maxAge (inclusive).
type bracket struct {
	maxAge int
	low    float64
	high   float64
}

// overweight spans five points above the normal range, obesity starts after it.
const overweightSpan = 5

var brackets = []bracket{
	{maxAge: 24, low: 19, high: 24},
	{maxAge: 34, low: 20, high: 25},
	{maxAge: 44, low: 21, high: 26},
	{maxAge: 54, low: 22, high: 27},
	{maxAge: 64, low: 23, high: 28},
	{maxAge: math.MaxInt, low: 24, high: 29},
}

// Calculator describes BMI values relative to the current date.
type Calculator struct {
	now func() time.Time
}

// NewCalculator returns a Calculator using now as its clock; nil means time.Now.
func NewCalculator(now func() time.Time) *Calculator {
	if now == nil {
		now = time.Now
	}
	return &Calculator{now: now}
}

// Calculate returns weight / height², truncated to two decimals.
// height must be positive.
func Calculate(weight, height float64) float64 {
	raw := weight / (height * height)
	return math.Floor(raw*100+1e-9) / 100
}

// Format renders a BMI without trailing zeros (25.39, 18.3).
func Format(bmi float64) string {
	return strconv.FormatFloat(bmi, 'f', -1, 64)
}

// Age returns the number of full years between birthdate and at.
func Age(birthdate, at time.Time) int {
	years := at.Year() - birthdate.Year()
	if at.Month() < birthdate.Month() || (at.Month() == birthdate.Month() && at.Day() < birthdate.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// Category picks the weight category for bmi at the given age.
func Category(age int, bmi float64) string {
	b := brackets[len(brackets)-1]
	for _, candidate := range brackets {
		if age <= candidate.maxAge {
			b = candidate
			break
		}
	}
	switch {
	case bmi < b.low:
		return Underweight
	case bmi <= b.high:
		return NormalWeight
	case bmi <= b.high+overweightSpan:
		return Overweight
	default:
		return Obesity
	}
}

// Describe calculates the BMI and returns the human readable message.
func (c *Calculator) Describe(birthdate time.Time, weight, height float64) string {
	value := Calculate(weight, height)
	category := Category(Age(birthdate, c.now()), value)
	return fmt.Sprintf(MessageFormat, Format(value), category)
}
