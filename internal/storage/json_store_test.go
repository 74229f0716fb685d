package storage

import (
	"path/filepath"
	"testing"

	"github.com/platefit/platefit-cli/internal/models"
)

func newTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "platefit.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return store
}

func TestJSONStoreLoadFailsWhenUninitialized(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "platefit.json"))
	if err := store.Load(); err == nil {
		t.Fatal("expected error loading uninitialized storage")
	}
}

func TestJSONStoreInitRefusesExistingFile(t *testing.T) {
	store := newTestJSONStore(t)
	if err := store.Init(); err == nil {
		t.Fatal("expected error initializing over existing storage")
	}
}

func TestJSONStoreDayRoundTrip(t *testing.T) {
	store := newTestJSONStore(t)

	day := models.DailyNutrition{
		Date: "2026-03-01",
		Entries: []models.FoodEntry{
			{ID: "a", FoodName: "Oatmeal", Calories: 300, AnalysisType: models.AnalysisText},
		},
		TotalCalories: 300,
		Revision:      2,
		UpdatedAt:     "2026-03-01T08:00:00Z",
	}
	if err := store.SaveDay(day); err != nil {
		t.Fatalf("SaveDay failed: %v", err)
	}

	got, err := store.GetDay("2026-03-01")
	if err != nil {
		t.Fatalf("GetDay failed: %v", err)
	}
	if got.Revision != 2 || got.TotalCalories != 300 || len(got.Entries) != 1 {
		t.Errorf("unexpected day after round trip: %+v", got)
	}

	if _, err := store.GetDay("2026-04-01"); err == nil {
		t.Error("expected error for unknown date")
	}
}

func TestJSONStoreSurvivesReload(t *testing.T) {
	store := newTestJSONStore(t)
	path := store.GetConfigPath()

	user := models.User{ID: "u1", Email: "alice@example.com", Profile: models.Profile{Name: "Alice"}}
	if err := store.SaveUser(user); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}
	if err := store.SaveDay(models.DailyNutrition{Date: "2026-03-01", TotalCalories: 300}); err != nil {
		t.Fatalf("SaveDay failed: %v", err)
	}

	// A fresh store against the same file sees the same state.
	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	gotUser, err := reopened.GetUser()
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if gotUser.Email != "alice@example.com" || gotUser.Profile.Name != "Alice" {
		t.Errorf("unexpected user after reload: %+v", gotUser)
	}

	days, err := reopened.GetAllDays()
	if err != nil {
		t.Fatalf("GetAllDays failed: %v", err)
	}
	if len(days) != 1 || days[0].Date != "2026-03-01" {
		t.Errorf("unexpected days after reload: %+v", days)
	}
}

func TestJSONStoreClearUserKeepsDays(t *testing.T) {
	store := newTestJSONStore(t)

	if err := store.SaveUser(models.User{ID: "u1", Email: "alice@example.com"}); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}
	if err := store.SaveDay(models.DailyNutrition{Date: "2026-03-01"}); err != nil {
		t.Fatalf("SaveDay failed: %v", err)
	}

	if err := store.ClearUser(); err != nil {
		t.Fatalf("ClearUser failed: %v", err)
	}

	user, err := store.GetUser()
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if !user.IsZero() {
		t.Errorf("expected empty user, got %+v", user)
	}

	if _, err := store.GetDay("2026-03-01"); err != nil {
		t.Errorf("expected day to survive user clear, got %v", err)
	}
}
