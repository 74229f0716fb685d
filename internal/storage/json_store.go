package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/platefit/platefit-cli/internal/models"
)

type Store struct {
	Version int                              `json:"version"`
	User    models.User                      `json:"user"`
	Days    map[string]models.DailyNutrition `json:"days"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Days:    make(map[string]models.DailyNutrition),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'platefit init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Days == nil {
		s.store.Days = make(map[string]models.DailyNutrition)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetUser() (models.User, error) {
	if s.store == nil {
		return models.User{}, fmt.Errorf("storage not loaded")
	}
	return s.store.User, nil
}

func (s *JSONStore) SaveUser(user models.User) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.User = user
	return s.save()
}

func (s *JSONStore) ClearUser() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.User = models.User{}
	return s.save()
}

func (s *JSONStore) SaveDay(day models.DailyNutrition) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Days[day.Date] = day
	return s.save()
}

func (s *JSONStore) GetDay(date string) (models.DailyNutrition, error) {
	if s.store == nil {
		return models.DailyNutrition{}, fmt.Errorf("storage not loaded")
	}

	day, ok := s.store.Days[date]
	if !ok {
		return models.DailyNutrition{}, fmt.Errorf("no record found for date: %s", date)
	}

	return day, nil
}

func (s *JSONStore) GetAllDays() ([]models.DailyNutrition, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	days := make([]models.DailyNutrition, 0, len(s.store.Days))
	for _, day := range s.store.Days {
		days = append(days, day)
	}

	return days, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
