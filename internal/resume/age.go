package resume

import (
	"math"
	"time"
)

// msPerYear is the 365.25 day year used for the age shown on the CV.
const msPerYear = 365.25 * 24 * 60 * 60 * 1000

// ComputeAge returns whole years between dob and today on a 365.25 day year.
// It can be off by one around birthdays; the printed CVs rely on this value.
func ComputeAge(dob, today time.Time) int {
	ms := today.Sub(dob).Milliseconds()
	return int(math.Floor(float64(ms) / msPerYear))
}

// BirthDate holds the calendar fields printed next to the age.
type BirthDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// FormatBirthDate reads the calendar fields of dob in its own location.
func FormatBirthDate(dob time.Time) BirthDate {
	return BirthDate{Year: dob.Year(), Month: int(dob.Month()), Day: dob.Day()}
}
