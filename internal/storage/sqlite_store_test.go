package storage

import (
	"path/filepath"
	"testing"

	"github.com/platefit/platefit-cli/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "platefit.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreLoadFailsWhenUninitialized(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "platefit.db"))
	if err := store.Load(); err == nil {
		store.Close()
		t.Fatal("expected error loading uninitialized storage")
	}
}

func TestSQLiteStoreDayRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	day := models.DailyNutrition{
		Date: "2026-03-01",
		Entries: []models.FoodEntry{
			{
				ID:           "a",
				FoodName:     "Oatmeal",
				Calories:     300,
				AnalysisType: models.AnalysisImage,
				ImageURL:     "https://cdn.example.com/oatmeal.jpg",
				Analysis:     map[string]any{"confidence": 0.9},
			},
		},
		TotalCalories: 300,
		Synced:        true,
		Revision:      3,
		UpdatedAt:     "2026-03-01T08:00:00Z",
	}
	if err := store.SaveDay(day); err != nil {
		t.Fatalf("SaveDay failed: %v", err)
	}

	got, err := store.GetDay("2026-03-01")
	if err != nil {
		t.Fatalf("GetDay failed: %v", err)
	}
	if got.Revision != 3 || !got.Synced || got.UpdatedAt != "2026-03-01T08:00:00Z" {
		t.Errorf("unexpected bookkeeping after round trip: %+v", got)
	}
	if len(got.Entries) != 1 || got.Entries[0].ImageURL != "https://cdn.example.com/oatmeal.jpg" {
		t.Errorf("unexpected entries after round trip: %+v", got.Entries)
	}

	if _, err := store.GetDay("2026-04-01"); err == nil {
		t.Error("expected error for unknown date")
	}
}

func TestSQLiteStoreSaveDayUpserts(t *testing.T) {
	store := newTestSQLiteStore(t)

	if err := store.SaveDay(models.DailyNutrition{Date: "2026-03-01", TotalCalories: 300, Revision: 1}); err != nil {
		t.Fatalf("SaveDay failed: %v", err)
	}
	if err := store.SaveDay(models.DailyNutrition{Date: "2026-03-01", TotalCalories: 510, Revision: 2}); err != nil {
		t.Fatalf("SaveDay failed: %v", err)
	}

	days, err := store.GetAllDays()
	if err != nil {
		t.Fatalf("GetAllDays failed: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("expected 1 day after upsert, got %d", len(days))
	}
	if days[0].TotalCalories != 510 || days[0].Revision != 2 {
		t.Errorf("expected latest write to win, got %+v", days[0])
	}
}

func TestSQLiteStoreUserRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	// No row yet reads as the zero user.
	user, err := store.GetUser()
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if !user.IsZero() {
		t.Errorf("expected zero user, got %+v", user)
	}

	want := models.User{
		ID:    "u1",
		Email: "alice@example.com",
		Plan:  "premium",
		Profile: models.Profile{
			Name:  "Alice",
			Age:   30,
			Goals: models.Goals{Calories: 2000, Protein: 150, Carbs: 250, Fat: 65},
		},
	}
	if err := store.SaveUser(want); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	got, err := store.GetUser()
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.Email != want.Email || got.Plan != want.Plan || got.Profile.Goals != want.Profile.Goals {
		t.Errorf("unexpected user after round trip: %+v", got)
	}

	if err := store.ClearUser(); err != nil {
		t.Fatalf("ClearUser failed: %v", err)
	}
	got, err = store.GetUser()
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("expected user cleared, got %+v", got)
	}
}

func TestSQLiteStoreSurvivesReload(t *testing.T) {
	store := newTestSQLiteStore(t)
	path := store.GetConfigPath()

	if err := store.SaveDay(models.DailyNutrition{Date: "2026-03-01", TotalCalories: 300}); err != nil {
		t.Fatalf("SaveDay failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	days, err := reopened.GetAllDays()
	if err != nil {
		t.Fatalf("GetAllDays failed: %v", err)
	}
	if len(days) != 1 || days[0].Date != "2026-03-01" || days[0].TotalCalories != 300 {
		t.Errorf("unexpected days after reload: %+v", days)
	}
}
