package models

import "testing"

func TestRecomputeSumsEntries(t *testing.T) {
	day := DailyNutrition{
		Date: "2026-03-01",
		Entries: []FoodEntry{
			{ID: "a", FoodName: "Oatmeal", Calories: 300, Protein: 10, Carbs: 54, Fat: 6},
			{ID: "b", FoodName: "Eggs", Calories: 210, Protein: 18, Carbs: 2, Fat: 15},
		},
	}

	day.Recompute()

	if day.TotalCalories != 510 {
		t.Errorf("expected 510 total calories, got %v", day.TotalCalories)
	}
	if day.TotalProtein != 28 {
		t.Errorf("expected 28 total protein, got %v", day.TotalProtein)
	}
	if day.TotalCarbs != 56 {
		t.Errorf("expected 56 total carbs, got %v", day.TotalCarbs)
	}
	if day.TotalFat != 21 {
		t.Errorf("expected 21 total fat, got %v", day.TotalFat)
	}
}

func TestRecomputeEmptyDayZeroesTotals(t *testing.T) {
	day := DailyNutrition{
		Date:          "2026-03-01",
		TotalCalories: 999,
	}

	day.Recompute()
	if day.Totals() != (MacroSet{}) {
		t.Errorf("expected zero totals for empty day, got %+v", day.Totals())
	}
}

func TestCloneIsDeep(t *testing.T) {
	day := DailyNutrition{
		Date: "2026-03-01",
		Entries: []FoodEntry{
			{ID: "a", FoodName: "Oatmeal", Analysis: map[string]any{"confidence": 0.9}},
		},
	}

	clone := day.Clone()
	clone.Entries[0].FoodName = "Granola"
	clone.Entries[0].Analysis["confidence"] = 0.1

	if day.Entries[0].FoodName != "Oatmeal" {
		t.Errorf("clone mutation leaked into original entry: %q", day.Entries[0].FoodName)
	}
	if day.Entries[0].Analysis["confidence"] != 0.9 {
		t.Errorf("clone mutation leaked into original analysis: %v", day.Entries[0].Analysis)
	}
}
