// Package ledger owns per-day nutrition state: goals, food entries, and
// computed totals. Mutations apply locally first and immediately; remote
// synchronization is best-effort and eventually consistent. The ledger is
// an explicitly constructed instance with no package-level state, safe for
// concurrent use by callers and its own detached sync tasks.
package ledger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/platefit/platefit-cli/internal/api"
	"github.com/platefit/platefit-cli/internal/constants"
	"github.com/platefit/platefit-cli/internal/logger"
	"github.com/platefit/platefit-cli/internal/models"
	"github.com/platefit/platefit-cli/internal/storage"
	"github.com/platefit/platefit-cli/internal/validation"
)

// ErrEntryNotFound is returned by UpdateFoodEntry when the entry id does
// not exist for the given date. Removal of a missing entry is a no-op and
// never returns this.
var ErrEntryNotFound = errors.New("entry not found")

// Options configures a new Ledger. Store and API are both optional: with
// a nil Store the ledger is memory-only, with a nil API it never syncs.
type Options struct {
	Store storage.Provider
	API   api.Client
	Date  string // initial active date, defaults to today
}

type Ledger struct {
	mu          sync.Mutex
	user        models.User
	days        map[string]*models.DailyNutrition
	currentDate string

	inFlight     int
	lastSyncedAt string
	syncErr      error

	cache *derivedCache
	store storage.Provider
	api   api.Client

	subs    map[int]func()
	nextSub int
	tasks   sync.WaitGroup
}

// New constructs a ledger. When a store is supplied it must already be
// loaded; the ledger hydrates its state from it so history survives
// process restart.
func New(opts Options) *Ledger {
	l := &Ledger{
		days:        make(map[string]*models.DailyNutrition),
		currentDate: opts.Date,
		cache:       newDerivedCache(),
		store:       opts.Store,
		api:         opts.API,
		subs:        make(map[int]func()),
	}

	if l.currentDate == "" {
		l.currentDate = time.Now().Format(constants.DateFormat)
	}

	if l.store != nil {
		if user, err := l.store.GetUser(); err == nil {
			l.user = user
		} else {
			logger.Warn("Failed to load user from local storage", "error", err)
		}
		if days, err := l.store.GetAllDays(); err == nil {
			for _, day := range days {
				d := day.Clone()
				l.days[d.Date] = &d
			}
		} else {
			logger.Warn("Failed to load days from local storage", "error", err)
		}
	}

	return l
}

// EntryInput is a food entry before the ledger assigns its identity. The
// id and creation timestamp are always generated locally.
type EntryInput struct {
	FoodName     string
	Quantity     string
	Calories     float64
	Protein      float64
	Carbs        float64
	Fat          float64
	AnalysisType models.AnalysisType
	ImageURL     string
	Analysis     map[string]any
}

// EntryUpdate is a partial update; nil fields are left unchanged.
type EntryUpdate struct {
	FoodName *string
	Quantity *string
	Calories *float64
	Protein  *float64
	Carbs    *float64
	Fat      *float64
	ImageURL *string
}

// SetUser replaces the root user record wholesale.
func (l *Ledger) SetUser(user models.User) {
	l.mu.Lock()
	l.user = user
	l.cache.invalidate(CacheGoals, CacheRemaining, CacheProgress)
	l.mirrorUserLocked()
	l.mu.Unlock()

	l.notify()
}

// UpdateUserProfile merges partial fields into the existing profile. The
// partial uses JSON field names; nested objects merge recursively, arrays
// replace wholesale, scalars overwrite.
func (l *Ledger) UpdateUserProfile(partial map[string]any) error {
	l.mu.Lock()
	merged, err := models.MergeProfile(l.user.Profile, partial)
	if err != nil {
		l.mu.Unlock()
		return fmt.Errorf("failed to update profile: %w", err)
	}
	l.user.Profile = merged
	l.cache.invalidate(CacheGoals, CacheRemaining, CacheProgress)
	l.mirrorUserLocked()
	l.mu.Unlock()

	l.notify()
	return nil
}

// UpdateNutritionGoals replaces the goals atomically.
func (l *Ledger) UpdateNutritionGoals(goals models.Goals) {
	l.mu.Lock()
	l.user.Profile.Goals = goals
	l.cache.invalidate(CacheGoals, CacheRemaining, CacheProgress)
	l.mirrorUserLocked()
	l.mu.Unlock()

	l.notify()
}

// ClearUser resets the user record to empty. Nutrition history is keyed
// by date, not by user, and is left intact.
func (l *Ledger) ClearUser() {
	l.mu.Lock()
	l.user = models.User{}
	l.cache.invalidate()
	if l.store != nil {
		if err := l.store.ClearUser(); err != nil {
			logger.Warn("Failed to clear user in local storage", "error", err)
		}
	}
	l.mu.Unlock()

	l.notify()
}

// SetCurrentDate changes the active-date pointer. No network activity.
func (l *Ledger) SetCurrentDate(date string) error {
	if err := validation.Date(date); err != nil {
		return err
	}

	l.mu.Lock()
	l.currentDate = date
	l.mu.Unlock()

	l.notify()
	return nil
}

// AddFoodEntry generates an id and creation timestamp, appends the entry
// to the date's record (created lazily), recomputes totals, and marks the
// day unsynced. With a non-empty token the new state is pushed to the
// remote API in a detached task; network failure surfaces through
// SyncError, never through this call.
func (l *Ledger) AddFoodEntry(date string, input EntryInput, token string) (models.FoodEntry, error) {
	if err := validation.Date(date); err != nil {
		return models.FoodEntry{}, err
	}

	if input.AnalysisType == "" {
		input.AnalysisType = models.AnalysisText
	}

	entry := models.FoodEntry{
		ID:           uuid.New().String(),
		FoodName:     input.FoodName,
		Quantity:     input.Quantity,
		Calories:     input.Calories,
		Protein:      input.Protein,
		Carbs:        input.Carbs,
		Fat:          input.Fat,
		AnalysisType: input.AnalysisType,
		ImageURL:     input.ImageURL,
		Analysis:     input.Analysis,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	if err := validation.Entry(entry); err != nil {
		return models.FoodEntry{}, err
	}

	l.mu.Lock()
	day := l.dayLocked(date)
	day.Entries = append(day.Entries, entry)
	l.finishMutationLocked(day)
	l.mu.Unlock()

	l.notify()
	l.persistDay(date, token)

	return entry, nil
}

// RemoveFoodEntry removes the matching entry. Removing an id that does
// not exist is a no-op: totals, sync state, and revision are unchanged.
func (l *Ledger) RemoveFoodEntry(date, entryID, token string) {
	l.mu.Lock()
	day, ok := l.days[date]
	if !ok {
		l.mu.Unlock()
		return
	}

	idx := -1
	for i, e := range day.Entries {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.mu.Unlock()
		return
	}

	day.Entries = append(day.Entries[:idx], day.Entries[idx+1:]...)
	l.finishMutationLocked(day)
	l.mu.Unlock()

	l.notify()
	l.persistDay(date, token)
}

// UpdateFoodEntry applies a partial update to one entry. Returns
// ErrEntryNotFound when no entry matches.
func (l *Ledger) UpdateFoodEntry(date, entryID string, updates EntryUpdate, token string) error {
	l.mu.Lock()
	day, ok := l.days[date]
	if !ok {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s on %s", ErrEntryNotFound, entryID, date)
	}

	idx := -1
	for i, e := range day.Entries {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s on %s", ErrEntryNotFound, entryID, date)
	}

	entry := day.Entries[idx]
	if updates.FoodName != nil {
		entry.FoodName = *updates.FoodName
	}
	if updates.Quantity != nil {
		entry.Quantity = *updates.Quantity
	}
	if updates.Calories != nil {
		entry.Calories = *updates.Calories
	}
	if updates.Protein != nil {
		entry.Protein = *updates.Protein
	}
	if updates.Carbs != nil {
		entry.Carbs = *updates.Carbs
	}
	if updates.Fat != nil {
		entry.Fat = *updates.Fat
	}
	if updates.ImageURL != nil {
		entry.ImageURL = *updates.ImageURL
	}

	if err := validation.Entry(entry); err != nil {
		l.mu.Unlock()
		return err
	}

	day.Entries[idx] = entry
	l.finishMutationLocked(day)
	l.mu.Unlock()

	l.notify()
	l.persistDay(date, token)
	return nil
}

// User returns the current user record.
func (l *Ledger) User() models.User {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.user
}

// CurrentDate returns the active-date pointer.
func (l *Ledger) CurrentDate() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.currentDate
}

// Day returns a copy of the record for a date and whether it exists.
func (l *Ledger) Day(date string) (models.DailyNutrition, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	day, ok := l.days[date]
	if !ok {
		return models.DailyNutrition{Date: date}, false
	}
	return day.Clone(), true
}

// Syncing reports whether any sync or fetch task is in flight.
func (l *Ledger) Syncing() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight > 0
}

// LastSyncedAt returns the RFC3339 timestamp of the last successful sync,
// or "" when none has completed.
func (l *Ledger) LastSyncedAt() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastSyncedAt
}

// SyncError returns the most recent sync failure. A later successful
// round-trip clears it.
func (l *Ledger) SyncError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.syncErr
}

// Flush waits for all detached persistence tasks to finish. Called on
// shutdown so fire-and-forget pushes are not cut off mid-request.
func (l *Ledger) Flush() {
	l.tasks.Wait()
}

// dayLocked returns the record for a date, creating it lazily.
func (l *Ledger) dayLocked(date string) *models.DailyNutrition {
	if day, ok := l.days[date]; ok {
		return day
	}
	day := &models.DailyNutrition{Date: date}
	l.days[date] = day
	return day
}

// finishMutationLocked is the common tail of every local day mutation:
// recompute totals, bump the revision, mark unsynced, mirror to local
// storage, and drop day-derived cache entries.
func (l *Ledger) finishMutationLocked(day *models.DailyNutrition) {
	day.Recompute()
	day.Revision++
	day.Synced = false
	day.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	l.cache.invalidate(CacheCurrentDay, CacheRemaining, CacheProgress)
	l.mirrorDayLocked(day)
}

func (l *Ledger) mirrorDayLocked(day *models.DailyNutrition) {
	if l.store == nil {
		return
	}
	if err := l.store.SaveDay(day.Clone()); err != nil {
		logger.Warn("Failed to mirror day to local storage", "date", day.Date, "error", err)
	}
}

func (l *Ledger) mirrorUserLocked() {
	if l.store == nil {
		return
	}
	if err := l.store.SaveUser(l.user); err != nil {
		logger.Warn("Failed to mirror user to local storage", "error", err)
	}
}
