package constants

import (
	"time"

	"github.com/platefit/platefit-cli/internal/models"
)

const (
	AppName           = "platefit"
	DefaultConfigPath = "~/.config/platefit/platefit.json"
	Version           = "v0.3.0"

	// KeyringTokenUser is the keyring account name under which the API
	// token is stored.
	KeyringTokenUser = "api-token"

	// DefaultAPIBaseURL is used when PLATEFIT_API_URL is not set.
	DefaultAPIBaseURL = "https://api.platefit.io"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// RequestTimeout bounds every remote API call.
	RequestTimeout = 15 * time.Second

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "platefit-"
)

// DefaultGoals are applied when a profile has no explicit targets yet.
var DefaultGoals = models.Goals{
	Calories: 2000,
	Protein:  150,
	Carbs:    250,
	Fat:      65,
}
