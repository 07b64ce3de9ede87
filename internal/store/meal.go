package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/larderhq/larder/internal/database"
	"github.com/larderhq/larder/internal/model"
)

type MealEntryStore struct {
	db DBTX
}

func NewMealEntryStore(db DBTX) *MealEntryStore {
	return &MealEntryStore{db: db}
}

// WithTx returns a store bound to the given transaction.
func (s *MealEntryStore) WithTx(tx *sql.Tx) *MealEntryStore {
	return &MealEntryStore{db: tx}
}

func scanEntry(scanner interface{ Scan(...any) error }) (*model.MealEntry, error) {
	var e model.MealEntry
	var food, deductions string
	err := scanner.Scan(
		&e.ID, &e.FoodID, &food, &e.QuantityGrams, &e.QuantityUnits,
		&e.Unit, &e.MealType, &e.Timestamp, &e.Date, &deductions,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(food), &e.Food); err != nil {
		return nil, fmt.Errorf("decode food snapshot: %w", err)
	}
	if deductions != "" {
		if err := json.Unmarshal([]byte(deductions), &e.PantryDeductions); err != nil {
			return nil, fmt.Errorf("decode deductions: %w", err)
		}
	}
	return &e, nil
}

const entryCols = `id, food_id, food, quantity_grams, quantity_units, unit, meal_type, timestamp, date, pantry_deductions`

func encodeEntry(e *model.MealEntry) (food, deductions string, err error) {
	f, err := json.Marshal(e.Food)
	if err != nil {
		return "", "", fmt.Errorf("encode food snapshot: %w", err)
	}
	if e.PantryDeductions == nil {
		return string(f), "[]", nil
	}
	d, err := json.Marshal(e.PantryDeductions)
	if err != nil {
		return "", "", fmt.Errorf("encode deductions: %w", err)
	}
	return string(f), string(d), nil
}

// Insert stores a new entry. Reports database.ErrDuplicateKey if the id
// is already taken.
func (s *MealEntryStore) Insert(e *model.MealEntry) error {
	food, deductions, err := encodeEntry(e)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO meal_entries (`+entryCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.FoodID, food, e.QuantityGrams, e.QuantityUnits,
		e.Unit, e.MealType, e.Timestamp, e.Date, deductions,
	)
	if database.IsDuplicateKey(err) {
		return fmt.Errorf("insert entry %q: %w", e.ID, database.ErrDuplicateKey)
	}
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// Upsert inserts or replaces the entry under its id.
func (s *MealEntryStore) Upsert(e *model.MealEntry) error {
	food, deductions, err := encodeEntry(e)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO meal_entries (`+entryCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.FoodID, food, e.QuantityGrams, e.QuantityUnits,
		e.Unit, e.MealType, e.Timestamp, e.Date, deductions,
	)
	if err != nil {
		return fmt.Errorf("upsert entry: %w", err)
	}
	return nil
}

func (s *MealEntryStore) GetByID(id string) (*model.MealEntry, error) {
	row := s.db.QueryRow(`SELECT `+entryCols+` FROM meal_entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

func (s *MealEntryStore) ListAll() ([]model.MealEntry, error) {
	return s.list(`SELECT ` + entryCols + ` FROM meal_entries ORDER BY timestamp ASC`)
}

func (s *MealEntryStore) ListByDate(date string) ([]model.MealEntry, error) {
	return s.list(`SELECT `+entryCols+` FROM meal_entries WHERE date = ? ORDER BY timestamp ASC`, date)
}

func (s *MealEntryStore) ListByFood(foodID string) ([]model.MealEntry, error) {
	return s.list(`SELECT `+entryCols+` FROM meal_entries WHERE food_id = ? ORDER BY timestamp ASC`, foodID)
}

func (s *MealEntryStore) list(query string, args ...any) ([]model.MealEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []model.MealEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Delete removes an entry; deleting a missing entry is a no-op.
func (s *MealEntryStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM meal_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}
