package validation

import (
	"errors"
	"fmt"
	"time"

	"github.com/platefit/platefit-cli/internal/constants"
	"github.com/platefit/platefit-cli/internal/models"
)

// ErrValidation is the sentinel wrapped by every validation failure, so
// callers can distinguish rejected input from transport or storage errors
// with errors.Is.
var ErrValidation = errors.New("validation failed")

// Failedf returns a validation error naming the offending field.
func Failedf(field, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrValidation, field, fmt.Sprintf(format, args...))
}

// Date checks that a date string is in YYYY-MM-DD format.
func Date(date string) error {
	if date == "" {
		return Failedf("date", "date is required")
	}
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return Failedf("date", "invalid date %q, expected YYYY-MM-DD", date)
	}
	return nil
}

// Entry checks the fields of a food entry before it is admitted to a day
// record. Validation happens before any mutation, so a rejected entry
// leaves ledger state untouched.
func Entry(e models.FoodEntry) error {
	if e.FoodName == "" {
		return Failedf("food_name", "food name is required")
	}
	if e.Calories < 0 || e.Protein < 0 || e.Carbs < 0 || e.Fat < 0 {
		return Failedf("macros", "macro values must be non-negative")
	}
	switch e.AnalysisType {
	case models.AnalysisImage, models.AnalysisText:
	default:
		return Failedf("analysis_type", "invalid analysis type %q", e.AnalysisType)
	}
	return nil
}
