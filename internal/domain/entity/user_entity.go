package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// BMI is derived from Weight and Height when the user is created and is
// stored as-is; it is never recomputed on read.
type User struct {
	ID             int64
	Name           string
	Birthdate      time.Time
	Weight         float64 // kilograms
	Height         float64 // meters
	FavouriteColor Color
	BMI            float64
}
