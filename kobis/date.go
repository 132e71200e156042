package kobis

import (
	"fmt"
	"time"
)

// DateLayout is the provider's YYYYMMDD date format
const DateLayout = "20060102"

// ParseDate parses an 8-digit YYYYMMDD calendar date
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("%w: %q must be 8 digits (YYYYMMDD)", ErrInvalidDate, s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return time.Time{}, fmt.Errorf("%w: %q must be 8 digits (YYYYMMDD)", ErrInvalidDate, s)
		}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidDate, s, err)
	}
	return t, nil
}

// ValidateDate checks that s is a YYYYMMDD calendar date
func ValidateDate(s string) error {
	_, err := ParseDate(s)
	return err
}

// DateString formats t as YYYYMMDD
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// Yesterday returns the day before now as YYYYMMDD. The provider publishes
// rankings from the previous day onward.
func Yesterday(now time.Time) string {
	return DateString(now.AddDate(0, 0, -1))
}
