package models

type AnalysisType string

const (
	AnalysisImage AnalysisType = "image"
	AnalysisText  AnalysisType = "text"
)

// MacroSet groups the four tracked macronutrient quantities. It is used
// both for daily totals and for derived values such as remaining macros.
type MacroSet struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type FoodEntry struct {
	ID           string         `json:"id"`
	FoodName     string         `json:"food_name"`
	Quantity     string         `json:"quantity,omitempty"` // free text, e.g. "1 cup"
	Calories     float64        `json:"calories"`
	Protein      float64        `json:"protein"`
	Carbs        float64        `json:"carbs"`
	Fat          float64        `json:"fat"`
	AnalysisType AnalysisType   `json:"analysis_type"`
	ImageURL     string         `json:"image_url,omitempty"`
	Analysis     map[string]any `json:"analysis,omitempty"` // opaque analyzer payload
	CreatedAt    string         `json:"created_at"`         // RFC3339 timestamp
}

// Macros returns the entry's macro contribution as a MacroSet.
func (e FoodEntry) Macros() MacroSet {
	return MacroSet{
		Calories: e.Calories,
		Protein:  e.Protein,
		Carbs:    e.Carbs,
		Fat:      e.Fat,
	}
}

type DailyNutrition struct {
	Date          string      `json:"date"` // YYYY-MM-DD format
	Entries       []FoodEntry `json:"entries"`
	TotalCalories float64     `json:"total_calories"`
	TotalProtein  float64     `json:"total_protein"`
	TotalCarbs    float64     `json:"total_carbs"`
	TotalFat      float64     `json:"total_fat"`
	Synced        bool        `json:"synced"`
	Revision      int         `json:"revision"`
	UpdatedAt     string      `json:"updated_at,omitempty"` // RFC3339 timestamp
}

// Recompute rebuilds the running totals from the current entries. Totals
// are never mutated independently; every mutation path calls this.
func (d *DailyNutrition) Recompute() {
	var totals MacroSet
	for _, e := range d.Entries {
		totals.Calories += e.Calories
		totals.Protein += e.Protein
		totals.Carbs += e.Carbs
		totals.Fat += e.Fat
	}
	d.TotalCalories = totals.Calories
	d.TotalProtein = totals.Protein
	d.TotalCarbs = totals.Carbs
	d.TotalFat = totals.Fat
}

// Totals returns the running totals as a MacroSet.
func (d DailyNutrition) Totals() MacroSet {
	return MacroSet{
		Calories: d.TotalCalories,
		Protein:  d.TotalProtein,
		Carbs:    d.TotalCarbs,
		Fat:      d.TotalFat,
	}
}

// Clone returns a deep copy so callers can hand out day records without
// exposing the ledger's internal slices and maps.
func (d DailyNutrition) Clone() DailyNutrition {
	out := d
	if d.Entries != nil {
		out.Entries = make([]FoodEntry, len(d.Entries))
		copy(out.Entries, d.Entries)
		for i := range out.Entries {
			if out.Entries[i].Analysis != nil {
				analysis := make(map[string]any, len(out.Entries[i].Analysis))
				for k, v := range out.Entries[i].Analysis {
					analysis[k] = v
				}
				out.Entries[i].Analysis = analysis
			}
		}
	}
	return out
}
