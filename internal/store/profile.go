package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/larderhq/larder/internal/database"
	"github.com/larderhq/larder/internal/model"
)

type ProfileStore struct {
	db DBTX
}

func NewProfileStore(db DBTX) *ProfileStore {
	return &ProfileStore{db: db}
}

// SaveCurrent upserts the single active profile snapshot.
func (s *ProfileStore) SaveCurrent(p model.Profile) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO current_profile
			(id, gender, age, height_cm, weight_kg, body_fat_percent, bmr, active_calories)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		model.CurrentProfileID, p.Gender, p.Age, p.HeightCm, p.WeightKg,
		p.BodyFatPercent, p.BMR, p.ActiveCalories,
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *ProfileStore) Current() (*model.Profile, error) {
	var p model.Profile
	err := s.db.QueryRow(
		`SELECT id, gender, age, height_cm, weight_kg, body_fat_percent, bmr, active_calories
		FROM current_profile WHERE id = ?`,
		model.CurrentProfileID,
	).Scan(&p.ID, &p.Gender, &p.Age, &p.HeightCm, &p.WeightKg, &p.BodyFatPercent, &p.BMR, &p.ActiveCalories)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// AppendHistory records a profile snapshot under its save timestamp.
// The history is append-only; a timestamp collision is a duplicate key.
func (s *ProfileStore) AppendHistory(e model.ProfileHistoryEntry) error {
	profile, err := json.Marshal(e.Profile)
	if err != nil {
		return fmt.Errorf("encode profile snapshot: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO profile_history (timestamp, date, profile) VALUES (?, ?, ?)`,
		e.Timestamp, e.Date, string(profile),
	)
	if database.IsDuplicateKey(err) {
		return fmt.Errorf("append history at %d: %w", e.Timestamp, database.ErrDuplicateKey)
	}
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (s *ProfileStore) HistoryForDate(date string) ([]model.ProfileHistoryEntry, error) {
	return s.history(`SELECT timestamp, date, profile FROM profile_history WHERE date = ? ORDER BY timestamp ASC`, date)
}

// HistoryBetween returns the snapshots whose date falls in [from, to],
// both YYYY-MM-DD, oldest first.
func (s *ProfileStore) HistoryBetween(from, to string) ([]model.ProfileHistoryEntry, error) {
	return s.history(
		`SELECT timestamp, date, profile FROM profile_history WHERE date >= ? AND date <= ? ORDER BY timestamp ASC`,
		from, to,
	)
}

func (s *ProfileStore) History() ([]model.ProfileHistoryEntry, error) {
	return s.history(`SELECT timestamp, date, profile FROM profile_history ORDER BY timestamp ASC`)
}

func (s *ProfileStore) history(query string, args ...any) ([]model.ProfileHistoryEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []model.ProfileHistoryEntry
	for rows.Next() {
		var e model.ProfileHistoryEntry
		var profile string
		if err := rows.Scan(&e.Timestamp, &e.Date, &profile); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		if err := json.Unmarshal([]byte(profile), &e.Profile); err != nil {
			return nil, fmt.Errorf("decode profile snapshot: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
