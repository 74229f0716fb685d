package cli

import (
	"fmt"
	"time"

	"github.com/platefit/platefit-cli/internal/backup"
	"github.com/platefit/platefit-cli/internal/constants"
	"github.com/platefit/platefit-cli/internal/ledger"
	"github.com/platefit/platefit-cli/internal/logger"
	"github.com/platefit/platefit-cli/internal/storage"
)

type Context struct {
	Store  storage.Provider
	Ledger *ledger.Ledger
	// Token yields the current API token, or "" when operating offline.
	Token func() string
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveDate returns the given date, or today when empty, and validates
// the format.
func ResolveDate(date string) (string, error) {
	if date == "" {
		return time.Now().Format(constants.DateFormat), nil
	}
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return date, nil
}
