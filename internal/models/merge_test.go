package models

import (
	"reflect"
	"testing"
)

func TestMergeMapsNestedMapsMerge(t *testing.T) {
	dst := map[string]any{
		"name": "Alice",
		"prefs": map[string]any{
			"units": "metric",
			"theme": "dark",
		},
	}
	src := map[string]any{
		"prefs": map[string]any{
			"theme": "light",
		},
	}

	out := MergeMaps(dst, src)

	prefs, ok := out["prefs"].(map[string]any)
	if !ok {
		t.Fatalf("expected prefs to stay a map, got %T", out["prefs"])
	}
	if prefs["units"] != "metric" {
		t.Errorf("expected sibling key units to survive merge, got %v", prefs["units"])
	}
	if prefs["theme"] != "light" {
		t.Errorf("expected theme overwritten to light, got %v", prefs["theme"])
	}
	if out["name"] != "Alice" {
		t.Errorf("expected untouched key name to survive, got %v", out["name"])
	}
}

func TestMergeMapsArraysReplaceWholesale(t *testing.T) {
	dst := map[string]any{
		"allergies": []any{"peanuts", "shellfish"},
	}
	src := map[string]any{
		"allergies": []any{"gluten"},
	}

	out := MergeMaps(dst, src)

	got, ok := out["allergies"].([]any)
	if !ok {
		t.Fatalf("expected allergies to be a slice, got %T", out["allergies"])
	}
	if !reflect.DeepEqual(got, []any{"gluten"}) {
		t.Errorf("expected array replaced wholesale, got %v", got)
	}
}

func TestMergeMapsScalarOverwritesMap(t *testing.T) {
	dst := map[string]any{
		"meta": map[string]any{"a": 1},
	}
	src := map[string]any{
		"meta": "cleared",
	}

	out := MergeMaps(dst, src)
	if out["meta"] != "cleared" {
		t.Errorf("expected scalar to overwrite map, got %v", out["meta"])
	}
}

func TestMergeMapsDoesNotModifyDst(t *testing.T) {
	dst := map[string]any{"name": "Alice"}
	src := map[string]any{"name": "Bob"}

	_ = MergeMaps(dst, src)
	if dst["name"] != "Alice" {
		t.Errorf("expected dst left unmodified, got %v", dst["name"])
	}
}

func TestMergeProfileMergesNestedGoals(t *testing.T) {
	profile := Profile{
		Name: "Alice",
		Age:  30,
		Goals: Goals{
			Calories: 2200,
			Protein:  160,
			Carbs:    250,
			Fat:      70,
		},
	}

	merged, err := MergeProfile(profile, map[string]any{
		"macros": map[string]any{
			"calories": 2000.0,
		},
	})
	if err != nil {
		t.Fatalf("MergeProfile failed: %v", err)
	}

	if merged.Goals.Calories != 2000 {
		t.Errorf("expected calories overwritten to 2000, got %v", merged.Goals.Calories)
	}
	if merged.Goals.Protein != 160 {
		t.Errorf("expected protein preserved at 160, got %v", merged.Goals.Protein)
	}
	if merged.Name != "Alice" || merged.Age != 30 {
		t.Errorf("expected untouched fields preserved, got %+v", merged)
	}
}

func TestMergeProfileKeepsExtensionFields(t *testing.T) {
	profile := Profile{
		Name: "Alice",
		Extra: map[string]any{
			"timezone": "UTC",
		},
	}

	merged, err := MergeProfile(profile, map[string]any{"name": "Bob"})
	if err != nil {
		t.Fatalf("MergeProfile failed: %v", err)
	}

	if merged.Name != "Bob" {
		t.Errorf("expected name updated, got %q", merged.Name)
	}
	if merged.Extra["timezone"] != "UTC" {
		t.Errorf("expected extension field to survive, got %v", merged.Extra)
	}
}

func TestMergeProfileEmptyPartialIsNoop(t *testing.T) {
	profile := Profile{Name: "Alice", Age: 30}

	merged, err := MergeProfile(profile, nil)
	if err != nil {
		t.Fatalf("MergeProfile failed: %v", err)
	}
	if !reflect.DeepEqual(merged, profile) {
		t.Errorf("expected empty partial to be a no-op, got %+v", merged)
	}
}
