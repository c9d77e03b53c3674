package utils

import (
	"fmt"
	"time"
)

// DateLayout is the processing date format (YYYYMMDD).
const DateLayout = "20060102"

// ProcessingDate formats t as a processing date.
func ProcessingDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidateDate checks that s is a YYYYMMDD calendar date.
func ValidateDate(s string) error {
	if len(s) != len(DateLayout) {
		return fmt.Errorf("invalid processing date %q: want YYYYMMDD", s)
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("invalid processing date %q: %w", s, err)
	}
	return nil
}
