package store

import (
	"database/sql"
	"fmt"

	"github.com/larderhq/larder/internal/model"
)

// DefaultRecentLimit caps how many recent selections a meal slot keeps
// visible for pre-filling.
const DefaultRecentLimit = 5

type RecentSelectionStore struct {
	db DBTX
}

func NewRecentSelectionStore(db DBTX) *RecentSelectionStore {
	return &RecentSelectionStore{db: db}
}

// WithTx returns a store bound to the given transaction.
func (s *RecentSelectionStore) WithTx(tx *sql.Tx) *RecentSelectionStore {
	return &RecentSelectionStore{db: tx}
}

// Upsert records the selection under its composite key. Last write wins.
func (s *RecentSelectionStore) Upsert(sel model.RecentSelection) error {
	if sel.ID == "" {
		sel.ID = model.RecentSelectionID(sel.MealType, sel.FoodID)
	}
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO recent_foods (id, meal_type, food_id, quantity, unit, last_used)
		VALUES (?, ?, ?, ?, ?, ?)`,
		sel.ID, sel.MealType, sel.FoodID, sel.Quantity, sel.Unit, sel.LastUsed,
	)
	if err != nil {
		return fmt.Errorf("upsert recent selection: %w", err)
	}
	return nil
}

func (s *RecentSelectionStore) Get(mealType model.MealType, foodID string) (*model.RecentSelection, error) {
	row := s.db.QueryRow(
		`SELECT id, meal_type, food_id, quantity, unit, last_used FROM recent_foods WHERE id = ?`,
		model.RecentSelectionID(mealType, foodID),
	)
	var sel model.RecentSelection
	err := row.Scan(&sel.ID, &sel.MealType, &sel.FoodID, &sel.Quantity, &sel.Unit, &sel.LastUsed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recent selection: %w", err)
	}
	return &sel, nil
}

// ListAll returns every slot's selections, most recently used first.
func (s *RecentSelectionStore) ListAll() ([]model.RecentSelection, error) {
	rows, err := s.db.Query(
		`SELECT id, meal_type, food_id, quantity, unit, last_used FROM recent_foods ORDER BY last_used DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list recent selections: %w", err)
	}
	defer rows.Close()
	return scanSelections(rows)
}

// ForMealType returns the slot's selections, most recently used first.
// A limit of 0 means DefaultRecentLimit.
func (s *RecentSelectionStore) ForMealType(mealType model.MealType, limit int) ([]model.RecentSelection, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	rows, err := s.db.Query(
		`SELECT id, meal_type, food_id, quantity, unit, last_used
		FROM recent_foods WHERE meal_type = ? ORDER BY last_used DESC LIMIT ?`,
		mealType, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list recent selections: %w", err)
	}
	defer rows.Close()
	return scanSelections(rows)
}

func scanSelections(rows *sql.Rows) ([]model.RecentSelection, error) {
	var sels []model.RecentSelection
	for rows.Next() {
		var sel model.RecentSelection
		if err := rows.Scan(&sel.ID, &sel.MealType, &sel.FoodID, &sel.Quantity, &sel.Unit, &sel.LastUsed); err != nil {
			return nil, fmt.Errorf("scan recent selection: %w", err)
		}
		sels = append(sels, sel)
	}
	return sels, rows.Err()
}

// Delete removes a selection; deleting a missing one is a no-op.
func (s *RecentSelectionStore) Delete(mealType model.MealType, foodID string) error {
	_, err := s.db.Exec(`DELETE FROM recent_foods WHERE id = ?`, model.RecentSelectionID(mealType, foodID))
	if err != nil {
		return fmt.Errorf("delete recent selection: %w", err)
	}
	return nil
}
