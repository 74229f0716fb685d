package validation

import (
	"errors"
	"testing"

	"github.com/platefit/platefit-cli/internal/models"
)

func TestDateAcceptsISOFormat(t *testing.T) {
	if err := Date("2026-03-01"); err != nil {
		t.Fatalf("expected valid date, got %v", err)
	}
}

func TestDateRejectsBadInput(t *testing.T) {
	for _, date := range []string{"", "03/01/2026", "2026-13-01", "yesterday"} {
		err := Date(date)
		if err == nil {
			t.Errorf("expected error for %q", date)
			continue
		}
		if !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation for %q, got %v", date, err)
		}
	}
}

func TestEntryRequiresFoodName(t *testing.T) {
	err := Entry(models.FoodEntry{AnalysisType: models.AnalysisText, Calories: 100})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestEntryRejectsNegativeMacros(t *testing.T) {
	err := Entry(models.FoodEntry{
		FoodName:     "Oatmeal",
		AnalysisType: models.AnalysisText,
		Calories:     -5,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestEntryRejectsUnknownAnalysisType(t *testing.T) {
	err := Entry(models.FoodEntry{FoodName: "Oatmeal", AnalysisType: "voice"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestEntryAcceptsValidInput(t *testing.T) {
	err := Entry(models.FoodEntry{
		FoodName:     "Oatmeal",
		AnalysisType: models.AnalysisImage,
		Calories:     300,
		Protein:      10,
	})
	if err != nil {
		t.Fatalf("expected valid entry, got %v", err)
	}
}
