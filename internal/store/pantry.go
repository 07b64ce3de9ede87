package store

import (
	"database/sql"
	"fmt"

	"github.com/larderhq/larder/internal/model"
)

type PantryBatchStore struct {
	db DBTX
}

func NewPantryBatchStore(db DBTX) *PantryBatchStore {
	return &PantryBatchStore{db: db}
}

// WithTx returns a store bound to the given transaction.
func (s *PantryBatchStore) WithTx(tx *sql.Tx) *PantryBatchStore {
	return &PantryBatchStore{db: tx}
}

func scanBatch(scanner interface{ Scan(...any) error }) (*model.PantryBatch, error) {
	var b model.PantryBatch
	err := scanner.Scan(
		&b.ID, &b.FoodID, &b.InitialQuantityInUnits, &b.InitialWeightInGrams,
		&b.CalculatedGramsPerUnit, &b.RemainingQuantityInUnits, &b.RemainingWeightInGrams,
		&b.ConsumedQuantityInUnits, &b.ConsumedWeightInGrams,
		&b.SpoiledQuantityInUnits, &b.SpoiledWeightInGrams, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

const batchCols = `id, food_id, initial_quantity_units, initial_weight_grams, grams_per_unit, remaining_quantity_units, remaining_weight_grams, consumed_quantity_units, consumed_weight_grams, spoiled_quantity_units, spoiled_weight_grams, created_at`

// Insert stores a new batch and returns it with its assigned id. Ids
// are allocated in arrival order, which is what FIFO ordering keys on.
func (s *PantryBatchStore) Insert(b *model.PantryBatch) (*model.PantryBatch, error) {
	result, err := s.db.Exec(
		`INSERT INTO pantry_batches
			(food_id, initial_quantity_units, initial_weight_grams, grams_per_unit,
			remaining_quantity_units, remaining_weight_grams,
			consumed_quantity_units, consumed_weight_grams,
			spoiled_quantity_units, spoiled_weight_grams, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.FoodID, b.InitialQuantityInUnits, b.InitialWeightInGrams, b.CalculatedGramsPerUnit,
		b.RemainingQuantityInUnits, b.RemainingWeightInGrams,
		b.ConsumedQuantityInUnits, b.ConsumedWeightInGrams,
		b.SpoiledQuantityInUnits, b.SpoiledWeightInGrams, b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert batch: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *PantryBatchStore) GetByID(id int64) (*model.PantryBatch, error) {
	row := s.db.QueryRow(`SELECT `+batchCols+` FROM pantry_batches WHERE id = ?`, id)
	b, err := scanBatch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

func (s *PantryBatchStore) ListAll() ([]model.PantryBatch, error) {
	return s.list(`SELECT ` + batchCols + ` FROM pantry_batches ORDER BY id ASC`)
}

func (s *PantryBatchStore) ListByFood(foodID string) ([]model.PantryBatch, error) {
	return s.list(`SELECT `+batchCols+` FROM pantry_batches WHERE food_id = ? ORDER BY id ASC`, foodID)
}

// ListAvailableByFood returns the food's batches with stock left, oldest
// first. This ordering is the FIFO contract; do not change it.
func (s *PantryBatchStore) ListAvailableByFood(foodID string) ([]model.PantryBatch, error) {
	return s.list(
		`SELECT `+batchCols+` FROM pantry_batches WHERE food_id = ? AND remaining_quantity_units > 0 ORDER BY id ASC`,
		foodID,
	)
}

// ListAvailable returns every batch with stock left, across all foods.
func (s *PantryBatchStore) ListAvailable() ([]model.PantryBatch, error) {
	return s.list(`SELECT ` + batchCols + ` FROM pantry_batches WHERE remaining_quantity_units > 0 ORDER BY id ASC`)
}

func (s *PantryBatchStore) list(query string, args ...any) ([]model.PantryBatch, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var batches []model.PantryBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, *b)
	}
	return batches, rows.Err()
}

// Update rewrites the batch's mutable quantity fields. Upsert semantics:
// a batch that does not exist is written as-is under its id.
func (s *PantryBatchStore) Update(b *model.PantryBatch) error {
	_, err := s.db.Exec(
		`INSERT INTO pantry_batches
			(id, food_id, initial_quantity_units, initial_weight_grams, grams_per_unit,
			remaining_quantity_units, remaining_weight_grams,
			consumed_quantity_units, consumed_weight_grams,
			spoiled_quantity_units, spoiled_weight_grams, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			remaining_quantity_units = excluded.remaining_quantity_units,
			remaining_weight_grams = excluded.remaining_weight_grams,
			consumed_quantity_units = excluded.consumed_quantity_units,
			consumed_weight_grams = excluded.consumed_weight_grams,
			spoiled_quantity_units = excluded.spoiled_quantity_units,
			spoiled_weight_grams = excluded.spoiled_weight_grams`,
		b.ID, b.FoodID, b.InitialQuantityInUnits, b.InitialWeightInGrams, b.CalculatedGramsPerUnit,
		b.RemainingQuantityInUnits, b.RemainingWeightInGrams,
		b.ConsumedQuantityInUnits, b.ConsumedWeightInGrams,
		b.SpoiledQuantityInUnits, b.SpoiledWeightInGrams, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	return nil
}

// Delete removes a batch unconditionally. Deleting a missing batch is a no-op.
func (s *PantryBatchStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM pantry_batches WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}
