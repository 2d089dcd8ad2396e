package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// accepted layouts for user supplied dates, most specific first
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"01/02/2006",
}

// ParseDate parses a purchase date written as YYYY-MM-DD, MM/DD/YYYY or RFC3339.
// The result is normalized to midnight UTC.
func ParseDate(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want YYYY-MM-DD)", value)
}

// BuildingAge returns the age in whole years of a building constructed in
// yearBuilt as of atDate. Buildings dated in the future report zero.
func BuildingAge(yearBuilt int, atDate time.Time) int {
	age := atDate.Year() - yearBuilt
	if age < 0 {
		return 0
	}
	return age
}

// BuiltAfter reports whether the construction year falls after the year of the
// given date.
func BuiltAfter(yearBuilt int, date time.Time) bool {
	if date.IsZero() {
		return false
	}
	return yearBuilt > date.Year()
}

// MonthsInService counts the months an asset placed in service on purchaseDate
// is in service during its first calendar year, including the purchase month.
func MonthsInService(purchaseDate time.Time) int {
	if purchaseDate.IsZero() {
		return 0
	}
	return 12 - int(purchaseDate.Month()) + 1
}
