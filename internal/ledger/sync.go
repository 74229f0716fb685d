package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/platefit/platefit-cli/internal/api"
	"github.com/platefit/platefit-cli/internal/logger"
	"github.com/platefit/platefit-cli/internal/models"
	"github.com/platefit/platefit-cli/internal/validation"
)

// persistDay launches a detached task that pushes the current state of a
// date to the remote API. It is fire and forget: failures are logged and
// surfaced through SyncError, never returned to the mutating caller. The
// day's revision at push time guards the confirmation; if a newer local
// mutation lands during the round trip, the day stays unsynced.
func (l *Ledger) persistDay(date, token string) {
	if token == "" || l.api == nil {
		return
	}

	l.mu.Lock()
	day, ok := l.days[date]
	if !ok {
		l.mu.Unlock()
		return
	}
	snapshot := day.Clone()
	l.inFlight++
	l.mu.Unlock()

	l.tasks.Add(1)
	go func() {
		defer l.tasks.Done()

		err := l.api.SaveDay(context.Background(), snapshot, token)

		l.mu.Lock()
		l.inFlight--
		if err != nil {
			l.syncErr = fmt.Errorf("failed to persist %s: %w", date, err)
			logger.Warn("Background persist failed", "date", date, "error", err)
			l.mu.Unlock()
			l.notify()
			return
		}
		l.confirmPushLocked(date, snapshot.Revision)
		l.mu.Unlock()
		l.notify()
	}()
}

// SyncNutritionData performs a full-state reconciliation with the remote
// API: every locally unsynced date is pushed, then remote state is pulled.
// Conflict rule: local wins for any date with unsynced local mutations,
// remote wins for every other date. The operation is idempotent; a second
// call with no intervening mutation leaves state unchanged.
//
// An empty token skips the network entirely and returns nil, keeping the
// ledger in local-only mode.
func (l *Ledger) SyncNutritionData(ctx context.Context, token string) error {
	if token == "" {
		logger.Debug("Sync skipped, no token available")
		return nil
	}
	if l.api == nil {
		return errors.New("no API client configured")
	}

	l.mu.Lock()
	var dirty []models.DailyNutrition
	for _, day := range l.days {
		if !day.Synced {
			dirty = append(dirty, day.Clone())
		}
	}
	sort.Slice(dirty, func(i, j int) bool { return dirty[i].Date < dirty[j].Date })
	l.inFlight++
	l.mu.Unlock()
	l.notify()

	defer func() {
		l.mu.Lock()
		l.inFlight--
		l.mu.Unlock()
		l.notify()
	}()

	if err := l.reconcileUser(ctx, token); err != nil {
		l.setSyncError(err)
		return err
	}

	// Push phase: local authority for unsynced dates.
	for _, day := range dirty {
		if err := l.api.SaveDay(ctx, day, token); err != nil {
			err = fmt.Errorf("failed to push %s: %w", day.Date, err)
			l.setSyncError(err)
			return err
		}
		l.mu.Lock()
		l.confirmPushLocked(day.Date, day.Revision)
		l.mu.Unlock()
	}

	// Pull phase: remote authority for every date without unsynced local
	// mutations.
	remote, err := l.api.ListDays(ctx, token)
	if err != nil {
		err = fmt.Errorf("failed to pull remote state: %w", err)
		l.setSyncError(err)
		return err
	}

	l.mu.Lock()
	for _, remoteDay := range remote {
		local, ok := l.days[remoteDay.Date]
		if ok && !local.Synced {
			// A mutation landed since the push phase; the next sync
			// will push it. Never clobber unsynced local state.
			continue
		}
		if ok && local.Synced && dayContentEqual(*local, remoteDay) {
			continue
		}
		l.adoptRemoteDayLocked(remoteDay)
	}
	l.lastSyncedAt = time.Now().UTC().Format(time.RFC3339)
	l.syncErr = nil
	l.cache.invalidate(CacheCurrentDay, CacheRemaining, CacheProgress)
	l.mu.Unlock()
	l.notify()

	return nil
}

// FetchDayNutrition pulls one date's authoritative record and overwrites
// the local record, marking it synced. A date unknown to the server is an
// empty day, not an error. If a local mutation lands while the request is
// in flight, the local state is kept (still unsynced) and returned.
//
// With an empty token the local record is returned as is.
func (l *Ledger) FetchDayNutrition(ctx context.Context, date, token string) (models.DailyNutrition, error) {
	if err := validation.Date(date); err != nil {
		return models.DailyNutrition{}, err
	}

	if token == "" || l.api == nil {
		day, _ := l.Day(date)
		return day, nil
	}

	l.mu.Lock()
	before := 0
	if day, ok := l.days[date]; ok {
		before = day.Revision
	}
	l.inFlight++
	l.mu.Unlock()
	l.notify()

	remoteDay, err := l.api.GetDay(ctx, date, token)

	l.mu.Lock()
	l.inFlight--
	if err != nil {
		if !errors.Is(err, api.ErrNotFound) {
			err = fmt.Errorf("failed to fetch %s: %w", date, err)
			l.syncErr = err
			l.mu.Unlock()
			l.notify()
			return models.DailyNutrition{}, err
		}
		remoteDay = models.DailyNutrition{Date: date}
	}
	remoteDay.Date = date

	if day, ok := l.days[date]; ok && day.Revision != before {
		// Stale response: a newer local mutation must not be clobbered.
		snapshot := day.Clone()
		l.mu.Unlock()
		l.notify()
		return snapshot, nil
	}

	adopted := l.adoptRemoteDayLocked(remoteDay)
	l.lastSyncedAt = time.Now().UTC().Format(time.RFC3339)
	l.syncErr = nil
	l.cache.invalidate(CacheCurrentDay, CacheRemaining, CacheProgress)
	l.mu.Unlock()
	l.notify()

	return adopted, nil
}

// reconcileUser ensures the local user record exists on the server and
// carries the server-assigned id. Local profile fields win; only identity
// comes back from the remote.
func (l *Ledger) reconcileUser(ctx context.Context, token string) error {
	l.mu.Lock()
	user := l.user
	l.mu.Unlock()

	if user.Email == "" || user.ID != "" {
		return nil
	}

	remote, err := l.api.GetUser(ctx, user.Email, token)
	if errors.Is(err, api.ErrNotFound) {
		remote, err = l.api.CreateUser(ctx, user, token)
	}
	if err != nil {
		return fmt.Errorf("failed to reconcile user %s: %w", user.Email, err)
	}

	l.mu.Lock()
	if l.user.Email == user.Email && l.user.ID == "" {
		l.user.ID = remote.ID
		if l.user.Plan == "" {
			l.user.Plan = remote.Plan
		}
		l.mirrorUserLocked()
	}
	l.mu.Unlock()
	l.notify()
	return nil
}

// confirmPushLocked marks a date synced if and only if its revision still
// matches the pushed snapshot. A mismatch means a newer local mutation
// occurred during the round trip; the confirmation is stale and dropped.
func (l *Ledger) confirmPushLocked(date string, pushedRevision int) {
	day, ok := l.days[date]
	if !ok || day.Revision != pushedRevision {
		logger.Debug("Discarding stale sync confirmation", "date", date, "revision", pushedRevision)
		return
	}
	day.Synced = true
	l.lastSyncedAt = time.Now().UTC().Format(time.RFC3339)
	l.syncErr = nil
	l.mirrorDayLocked(day)
}

// adoptRemoteDayLocked overwrites the local record for a date with the
// remote one. The local revision counter stays monotonic so in-flight
// confirmations for the replaced state are rejected.
func (l *Ledger) adoptRemoteDayLocked(remoteDay models.DailyNutrition) models.DailyNutrition {
	adopted := remoteDay.Clone()
	adopted.Synced = true
	if local, ok := l.days[adopted.Date]; ok {
		adopted.Revision = local.Revision + 1
	} else if adopted.Revision == 0 {
		adopted.Revision = 1
	}
	adopted.Recompute()
	l.days[adopted.Date] = &adopted
	l.mirrorDayLocked(&adopted)
	return adopted.Clone()
}

func (l *Ledger) setSyncError(err error) {
	l.mu.Lock()
	l.syncErr = err
	l.mu.Unlock()
	logger.Warn("Sync failed", "error", err)
	l.notify()
}

// dayContentEqual compares two day records by entry content, ignoring
// local bookkeeping (revision, sync flag). Used to keep pulls idempotent.
func dayContentEqual(a, b models.DailyNutrition) bool {
	type content struct {
		Entries []models.FoodEntry
		Totals  models.MacroSet
	}
	ha, errA := hashstructure.Hash(content{a.Entries, a.Totals()}, hashstructure.FormatV2, nil)
	hb, errB := hashstructure.Hash(content{b.Entries, b.Totals()}, hashstructure.FormatV2, nil)
	if errA != nil || errB != nil {
		return false
	}
	return ha == hb
}
