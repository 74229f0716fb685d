package ledger

import (
	"github.com/mitchellh/hashstructure/v2"

	"github.com/platefit/platefit-cli/internal/constants"
	"github.com/platefit/platefit-cli/internal/models"
)

// Cache names for the derived views. InvalidateCache accepts these.
const (
	CacheCurrentDay = "current_day"
	CacheRemaining  = "remaining_macros"
	CacheProgress   = "progress"
	CacheGoals      = "goals"
)

// Progress holds per-macro completion percentages (100 * total / goal).
type Progress struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// derivedCache memoizes derived views. Each entry carries a content-hash
// key over exactly the inputs the view depends on; a lookup is served only
// when the key matches, so structurally equal but freshly allocated inputs
// still hit and any relevant mutation misses.
type derivedCache struct {
	entries map[string]cacheEntry
}

type cacheEntry struct {
	key   uint64
	value any
}

func newDerivedCache() *derivedCache {
	return &derivedCache{
		entries: make(map[string]cacheEntry),
	}
}

func (c *derivedCache) lookup(name string, key uint64) (any, bool) {
	e, ok := c.entries[name]
	if !ok || e.key != key {
		return nil, false
	}
	return e.value, true
}

func (c *derivedCache) put(name string, key uint64, value any) {
	c.entries[name] = cacheEntry{key: key, value: value}
}

// invalidate drops the named entries, or all entries when none are named.
func (c *derivedCache) invalidate(names ...string) {
	if len(names) == 0 {
		c.entries = make(map[string]cacheEntry)
		return
	}
	for _, name := range names {
		delete(c.entries, name)
	}
}

// hashKey builds a deterministic content hash of the cache inputs.
func hashKey(input any) uint64 {
	key, err := hashstructure.Hash(input, hashstructure.FormatV2, nil)
	if err != nil {
		// An unhashable input degrades to recompute-always.
		return 0
	}
	return key
}

// dayCacheInput identifies a day record's content for cache keying.
type dayCacheInput struct {
	Date      string
	Revision  int
	UpdatedAt string
	Goals     models.Goals
}

// InvalidateCache drops cached derived values. With no arguments every
// entry is dropped. Purely an optimization hook; reads always return the
// value the pure function would produce from current state.
func (l *Ledger) InvalidateCache(names ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache.invalidate(names...)
}

// CurrentDayNutrition returns the record for the active date, an empty
// record when none exists yet.
func (l *Ledger) CurrentDayNutrition() models.DailyNutrition {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := hashKey(l.dayInputLocked(l.currentDate))
	if v, ok := l.cache.lookup(CacheCurrentDay, key); ok {
		// Clone on the way out so callers cannot mutate the cached value.
		return v.(models.DailyNutrition).Clone()
	}

	var snapshot models.DailyNutrition
	if day, ok := l.days[l.currentDate]; ok {
		snapshot = day.Clone()
	} else {
		snapshot = models.DailyNutrition{Date: l.currentDate}
	}

	l.cache.put(CacheCurrentDay, key, snapshot)
	return snapshot.Clone()
}

// RemainingMacros returns goals minus totals for the date (active date
// when date is ""). Values are floored at zero: once a goal is exceeded
// the remainder reads 0, not negative.
func (l *Ledger) RemainingMacros(date string) models.MacroSet {
	l.mu.Lock()
	defer l.mu.Unlock()

	if date == "" {
		date = l.currentDate
	}

	key := hashKey(l.dayInputLocked(date))
	if v, ok := l.cache.lookup(CacheRemaining, key); ok {
		return v.(models.MacroSet)
	}

	goals := l.resolvedGoalsLocked()
	totals := l.totalsLocked(date)
	remaining := models.MacroSet{
		Calories: floorZero(goals.Calories - totals.Calories),
		Protein:  floorZero(goals.Protein - totals.Protein),
		Carbs:    floorZero(goals.Carbs - totals.Carbs),
		Fat:      floorZero(goals.Fat - totals.Fat),
	}

	l.cache.put(CacheRemaining, key, remaining)
	return remaining
}

// ProgressPercentages returns 100 * total / goal per macro for the date
// (active date when date is ""). A zero goal yields 0, never NaN or Inf.
func (l *Ledger) ProgressPercentages(date string) Progress {
	l.mu.Lock()
	defer l.mu.Unlock()

	if date == "" {
		date = l.currentDate
	}

	key := hashKey(l.dayInputLocked(date))
	if v, ok := l.cache.lookup(CacheProgress, key); ok {
		return v.(Progress)
	}

	goals := l.resolvedGoalsLocked()
	totals := l.totalsLocked(date)
	progress := Progress{
		Calories: percent(totals.Calories, goals.Calories),
		Protein:  percent(totals.Protein, goals.Protein),
		Carbs:    percent(totals.Carbs, goals.Carbs),
		Fat:      percent(totals.Fat, goals.Fat),
	}

	l.cache.put(CacheProgress, key, progress)
	return progress
}

// UserGoals returns the resolved nutrition goals: the profile's targets,
// or the application defaults when the profile has none set.
func (l *Ledger) UserGoals() models.Goals {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := hashKey(l.user.Profile.Goals)
	if v, ok := l.cache.lookup(CacheGoals, key); ok {
		return v.(models.Goals)
	}

	goals := l.resolvedGoalsLocked()
	l.cache.put(CacheGoals, key, goals)
	return goals
}

func (l *Ledger) dayInputLocked(date string) dayCacheInput {
	input := dayCacheInput{
		Date:  date,
		Goals: l.user.Profile.Goals,
	}
	if day, ok := l.days[date]; ok {
		input.Revision = day.Revision
		input.UpdatedAt = day.UpdatedAt
	}
	return input
}

func (l *Ledger) totalsLocked(date string) models.MacroSet {
	if day, ok := l.days[date]; ok {
		return day.Totals()
	}
	return models.MacroSet{}
}

func (l *Ledger) resolvedGoalsLocked() models.Goals {
	goals := l.user.Profile.Goals
	if goals == (models.Goals{}) {
		return constants.DefaultGoals
	}
	return goals
}

func percent(consumed, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return 100 * consumed / target
}

func floorZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
