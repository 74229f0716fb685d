package storage

import "github.com/platefit/platefit-cli/internal/models"

// Provider is the durable local mirror of ledger state. Implementations
// must persist every write immediately so state survives process restart.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// User
	GetUser() (models.User, error)
	SaveUser(models.User) error
	ClearUser() error

	// Days
	SaveDay(models.DailyNutrition) error
	GetDay(date string) (models.DailyNutrition, error)
	GetAllDays() ([]models.DailyNutrition, error)

	// Utils
	GetConfigPath() string
}
