package resume

import (
	"strconv"
	"strings"
)

// UnknownMonth marks a month the student could not remember.
const UnknownMonth = "00"

// DisplayDate is a year/month pair ready for the CV tables.
type DisplayDate struct {
	Year  string `json:"year"`
	Month string `json:"month"`
}

// splitPartialDate breaks "YYYY[-MM[-DD]]" into its parts. Missing parts are "".
func splitPartialDate(s string) (year, month, day string) {
	parts := strings.Split(s, "-")
	year = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		month = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		day = strings.TrimSpace(parts[2])
	}
	return year, month, day
}

// ResolveDisplayDate picks what to print for a period. A nil or empty end date
// falls back to the start date; month "00" is never printed.
func ResolveDisplayDate(endDate, startDate *string) DisplayDate {
	if endDate != nil && *endDate != "" {
		year, month, _ := splitPartialDate(*endDate)
		switch {
		case year != "" && month != UnknownMonth:
			return DisplayDate{Year: year, Month: month}
		case month == UnknownMonth && year != "":
			return DisplayDate{Year: year}
		}
	}
	return fromStart(startDate)
}

func fromStart(startDate *string) DisplayDate {
	if startDate == nil {
		return DisplayDate{}
	}
	year, month, _ := splitPartialDate(*startDate)
	if month == UnknownMonth {
		month = ""
	}
	return DisplayDate{Year: year, Month: month}
}

// MaxDaysInMonth bounds the day picker for a full date.
func MaxDaysInMonth(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// ValidPartialDate reports whether s is YYYY, YYYY-MM or YYYY-MM-DD with a
// 1-4 digit year, month 00-12 and a day that exists in that month.
func ValidPartialDate(s string) bool {
	if s == "" {
		return false
	}
	parts := strings.Split(s, "-")
	if len(parts) > 3 {
		return false
	}
	year, month, day := splitPartialDate(s)
	y, ok := digits(year, 1, 4)
	if !ok {
		return false
	}
	if len(parts) == 1 {
		return true
	}
	m, ok := digits(month, 2, 2)
	if !ok || m > 12 {
		return false
	}
	if len(parts) == 2 {
		return true
	}
	if m == 0 {
		return false
	}
	d, ok := digits(day, 2, 2)
	return ok && d >= 1 && d <= MaxDaysInMonth(y, m)
}

// ValidPeriodDate is ValidPartialDate plus the year-blank "-MM" shape that
// period dates may carry. ResolveDisplayDate falls back to the start date
// for those.
func ValidPeriodDate(s string) bool {
	if ValidPartialDate(s) {
		return true
	}
	if !strings.HasPrefix(s, "-") || strings.Count(s, "-") != 1 {
		return false
	}
	m, ok := digits(s[1:], 2, 2)
	return ok && m <= 12
}

func digits(s string, minLen, maxLen int) (int, bool) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
