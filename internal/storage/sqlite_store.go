package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/platefit/platefit-cli/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS days (
	date           TEXT PRIMARY KEY,
	entries        TEXT NOT NULL DEFAULT '[]',
	total_calories REAL NOT NULL DEFAULT 0,
	total_protein  REAL NOT NULL DEFAULT 0,
	total_carbs    REAL NOT NULL DEFAULT 0,
	total_fat      REAL NOT NULL DEFAULT 0,
	synced         INTEGER NOT NULL DEFAULT 0,
	revision       INTEGER NOT NULL DEFAULT 0,
	updated_at     TEXT
);

CREATE TABLE IF NOT EXISTS user_record (
	singleton INTEGER PRIMARY KEY CHECK (singleton = 1),
	id        TEXT NOT NULL DEFAULT '',
	email     TEXT NOT NULL DEFAULT '',
	plan      TEXT NOT NULL DEFAULT '',
	profile   TEXT NOT NULL DEFAULT '{}'
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'platefit init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema creation is idempotent, so an older database picks up new
	// tables on load.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to verify schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetUser() (models.User, error) {
	if s.db == nil {
		return models.User{}, fmt.Errorf("storage not loaded")
	}

	var user models.User
	var profileJSON string
	err := s.db.QueryRow(`SELECT id, email, plan, profile FROM user_record WHERE singleton = 1`).
		Scan(&user.ID, &user.Email, &user.Plan, &profileJSON)
	if err == sql.ErrNoRows {
		return models.User{}, nil
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to read user: %w", err)
	}

	if err := json.Unmarshal([]byte(profileJSON), &user.Profile); err != nil {
		return models.User{}, fmt.Errorf("failed to parse stored profile: %w", err)
	}

	return user, nil
}

func (s *SQLiteStore) SaveUser(user models.User) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	profileJSON, err := json.Marshal(user.Profile)
	if err != nil {
		return fmt.Errorf("failed to serialize profile: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO user_record (singleton, id, email, plan, profile)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(singleton) DO UPDATE SET
			id = excluded.id,
			email = excluded.email,
			plan = excluded.plan,
			profile = excluded.profile`,
		user.ID, user.Email, user.Plan, string(profileJSON))
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

func (s *SQLiteStore) ClearUser() error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, err := s.db.Exec(`DELETE FROM user_record WHERE singleton = 1`); err != nil {
		return fmt.Errorf("failed to clear user: %w", err)
	}

	return nil
}

func (s *SQLiteStore) SaveDay(day models.DailyNutrition) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	entriesJSON, err := json.Marshal(day.Entries)
	if err != nil {
		return fmt.Errorf("failed to serialize entries: %w", err)
	}

	synced := 0
	if day.Synced {
		synced = 1
	}

	_, err = s.db.Exec(`
		INSERT INTO days (date, entries, total_calories, total_protein, total_carbs, total_fat, synced, revision, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			entries = excluded.entries,
			total_calories = excluded.total_calories,
			total_protein = excluded.total_protein,
			total_carbs = excluded.total_carbs,
			total_fat = excluded.total_fat,
			synced = excluded.synced,
			revision = excluded.revision,
			updated_at = excluded.updated_at`,
		day.Date, string(entriesJSON), day.TotalCalories, day.TotalProtein,
		day.TotalCarbs, day.TotalFat, synced, day.Revision, day.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save day %s: %w", day.Date, err)
	}

	return nil
}

func (s *SQLiteStore) GetDay(date string) (models.DailyNutrition, error) {
	if s.db == nil {
		return models.DailyNutrition{}, fmt.Errorf("storage not loaded")
	}

	row := s.db.QueryRow(`
		SELECT date, entries, total_calories, total_protein, total_carbs, total_fat, synced, revision, updated_at
		FROM days WHERE date = ?`, date)

	day, err := scanDay(row)
	if err == sql.ErrNoRows {
		return models.DailyNutrition{}, fmt.Errorf("no record found for date: %s", date)
	}
	if err != nil {
		return models.DailyNutrition{}, fmt.Errorf("failed to read day %s: %w", date, err)
	}

	return day, nil
}

func (s *SQLiteStore) GetAllDays() ([]models.DailyNutrition, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`
		SELECT date, entries, total_calories, total_protein, total_carbs, total_fat, synced, revision, updated_at
		FROM days ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("failed to list days: %w", err)
	}
	defer rows.Close()

	var days []models.DailyNutrition
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read day row: %w", err)
		}
		days = append(days, day)
	}

	return days, rows.Err()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDay(row rowScanner) (models.DailyNutrition, error) {
	var day models.DailyNutrition
	var entriesJSON string
	var synced int
	var updatedAt sql.NullString

	err := row.Scan(&day.Date, &entriesJSON, &day.TotalCalories, &day.TotalProtein,
		&day.TotalCarbs, &day.TotalFat, &synced, &day.Revision, &updatedAt)
	if err != nil {
		return models.DailyNutrition{}, err
	}

	if err := json.Unmarshal([]byte(entriesJSON), &day.Entries); err != nil {
		return models.DailyNutrition{}, fmt.Errorf("failed to parse stored entries: %w", err)
	}

	day.Synced = synced != 0
	day.UpdatedAt = updatedAt.String

	return day, nil
}
