// Package ledger owns the pantry batch set: intake, FIFO consumption,
// reversal, spoilage and removal. All quantity math happens here; other
// packages only see batches through these operations.
package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/larderhq/larder/internal/model"
	"github.com/larderhq/larder/internal/store"
)

var (
	// ErrInvalidQuantity is reported when an intake or consumption
	// quantity is missing, zero or negative.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInsufficientStock is reported when FIFO consumption cannot be
	// fully satisfied. Nothing is mutated in that case.
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Ledger struct {
	db      *sql.DB
	batches *store.PantryBatchStore
}

func New(db *sql.DB) *Ledger {
	return &Ledger{db: db, batches: store.NewPantryBatchStore(db)}
}

// AddBatch stocks one new lot of a food. For foods whose native unit is
// already a weight (grams, milliliters) the quantity is the weight and
// weightInGrams is ignored. The grams-per-unit ratio is computed once
// here and never recomputed; batches of differing density coexist.
func (l *Ledger) AddBatch(food model.FoodItem, quantityInUnits, weightInGrams float64) (*model.PantryBatch, error) {
	if quantityInUnits <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %v", ErrInvalidQuantity, quantityInUnits)
	}
	if model.IsWeightUnit(food.DefaultUnit) {
		weightInGrams = quantityInUnits
	} else if weightInGrams <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive, got %v", ErrInvalidQuantity, weightInGrams)
	}

	b := &model.PantryBatch{
		FoodID:                   food.ID,
		InitialQuantityInUnits:   quantityInUnits,
		InitialWeightInGrams:     weightInGrams,
		CalculatedGramsPerUnit:   weightInGrams / quantityInUnits,
		RemainingQuantityInUnits: quantityInUnits,
		RemainingWeightInGrams:   weightInGrams,
		CreatedAt:                time.Now().Unix(),
	}
	return l.batches.Insert(b)
}

// ConsumeFIFO consumes the requested unit quantity of a food, draining
// the oldest batches first, inside its own transaction.
func (l *Ledger) ConsumeFIFO(foodID string, quantityInUnits float64) (float64, []model.Deduction, error) {
	tx, err := l.db.Begin()
	if err != nil {
		return 0, nil, fmt.Errorf("begin consume: %w", err)
	}
	defer tx.Rollback()

	grams, deductions, err := l.ConsumeFIFOTx(tx, foodID, quantityInUnits)
	if err != nil {
		return 0, nil, err
	}
	if err := tx.Commit(); err != nil {
		return 0, nil, fmt.Errorf("commit consume: %w", err)
	}
	return grams, deductions, nil
}

// ConsumeFIFOTx is ConsumeFIFO inside a caller-owned transaction, so a
// meal-entry insert can share the same commit as the batch updates.
//
// The full deduction plan is computed against a snapshot of the food's
// available batches before any batch is written. If the plan cannot
// satisfy the requested quantity, ErrInsufficientStock is returned and
// no batch is touched. Each batch converts units to grams with its own
// frozen ratio, never a cross-batch average.
func (l *Ledger) ConsumeFIFOTx(tx *sql.Tx, foodID string, quantityInUnits float64) (float64, []model.Deduction, error) {
	if quantityInUnits <= 0 {
		return 0, nil, fmt.Errorf("%w: quantity must be positive, got %v", ErrInvalidQuantity, quantityInUnits)
	}

	batches := l.batches.WithTx(tx)
	available, err := batches.ListAvailableByFood(foodID)
	if err != nil {
		return 0, nil, err
	}

	// Plan
	left := quantityInUnits
	totalGrams := 0.0
	var deductions []model.Deduction
	var planned []model.PantryBatch
	for i := range available {
		if left <= 0 {
			break
		}
		b := available[i]

		units := left
		if b.RemainingQuantityInUnits < units {
			units = b.RemainingQuantityInUnits
		}
		grams := units * b.CalculatedGramsPerUnit

		b.RemainingQuantityInUnits -= units
		b.RemainingWeightInGrams -= grams
		b.ConsumedQuantityInUnits += units
		b.ConsumedWeightInGrams += grams

		totalGrams += grams
		left -= units
		deductions = append(deductions, model.Deduction{BatchID: b.ID, ConsumedUnits: units, ConsumedGrams: grams})
		planned = append(planned, b)
	}

	if left > 0 {
		return 0, nil, fmt.Errorf("%w: food %s short by %v units", ErrInsufficientStock, foodID, left)
	}

	// Commit the plan
	for i := range planned {
		if err := batches.Update(&planned[i]); err != nil {
			return 0, nil, err
		}
	}
	return totalGrams, deductions, nil
}

// ReverseConsumption feeds a meal entry's deductions back into the
// pantry, inside its own transaction. It returns the ids of batches
// that no longer exist and were skipped.
func (l *Ledger) ReverseConsumption(deductions []model.Deduction) ([]int64, error) {
	tx, err := l.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin reversal: %w", err)
	}
	defer tx.Rollback()

	skipped, err := l.ReverseConsumptionTx(tx, deductions)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reversal: %w", err)
	}
	return skipped, nil
}

// ReverseConsumptionTx restores each deduction's amounts to its batch.
// A batch deleted since the deduction was recorded cannot be restored;
// that deduction is skipped and reported, the rest still apply.
func (l *Ledger) ReverseConsumptionTx(tx *sql.Tx, deductions []model.Deduction) ([]int64, error) {
	batches := l.batches.WithTx(tx)

	var skipped []int64
	for _, d := range deductions {
		b, err := batches.GetByID(d.BatchID)
		if err != nil {
			return nil, err
		}
		if b == nil {
			slog.Warn("reversal skipped deleted batch", "batch_id", d.BatchID, "units", d.ConsumedUnits)
			skipped = append(skipped, d.BatchID)
			continue
		}

		b.RemainingQuantityInUnits += d.ConsumedUnits
		b.RemainingWeightInGrams += d.ConsumedGrams
		b.ConsumedQuantityInUnits -= d.ConsumedUnits
		b.ConsumedWeightInGrams -= d.ConsumedGrams

		if err := batches.Update(b); err != nil {
			return nil, err
		}
	}
	return skipped, nil
}

// SpoilBatch moves up to spoiledUnits from remaining to spoiled, using
// the batch's frozen ratio for the gram conversion. Amounts beyond the
// remaining quantity are clamped; remaining never goes negative.
// Returns (nil, nil) if the batch does not exist.
func (l *Ledger) SpoilBatch(batchID int64, spoiledUnits float64) (*model.PantryBatch, error) {
	if spoiledUnits <= 0 {
		return nil, fmt.Errorf("%w: spoiled quantity must be positive, got %v", ErrInvalidQuantity, spoiledUnits)
	}

	b, err := l.batches.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}

	units := spoiledUnits
	if b.RemainingQuantityInUnits < units {
		units = b.RemainingQuantityInUnits
	}
	grams := units * b.CalculatedGramsPerUnit

	b.RemainingQuantityInUnits -= units
	b.RemainingWeightInGrams -= grams
	b.SpoiledQuantityInUnits += units
	b.SpoiledWeightInGrams += grams

	if err := l.batches.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

// RemoveBatch deletes a batch regardless of its remaining, consumed or
// spoiled state. There is no undo; reversals that later reference this
// batch become no-ops.
func (l *Ledger) RemoveBatch(batchID int64) error {
	return l.batches.Delete(batchID)
}

// EstimateGramsPerUnit returns the weighted-average grams per unit
// across the food's available batches, used to pre-fill a total-grams
// estimate for unit-based entry. This is an estimate only: actual
// deduction grams come from each batch's own frozen ratio and can
// diverge once batches of differing density coexist.
func (l *Ledger) EstimateGramsPerUnit(foodID string) (float64, error) {
	available, err := l.batches.ListAvailableByFood(foodID)
	if err != nil {
		return 0, err
	}
	var units, grams float64
	for _, b := range available {
		units += b.RemainingQuantityInUnits
		grams += b.RemainingWeightInGrams
	}
	if units == 0 {
		return 0, nil
	}
	return grams / units, nil
}

// Batch returns one batch, or nil if it does not exist.
func (l *Ledger) Batch(batchID int64) (*model.PantryBatch, error) {
	return l.batches.GetByID(batchID)
}

// Batches returns every batch, oldest first.
func (l *Ledger) Batches() ([]model.PantryBatch, error) {
	return l.batches.ListAll()
}

// BatchesForFood returns the food's batches, oldest first.
func (l *Ledger) BatchesForFood(foodID string) ([]model.PantryBatch, error) {
	return l.batches.ListByFood(foodID)
}

// AvailableFoods returns the ids of foods with any stock left.
func (l *Ledger) AvailableFoods() ([]string, error) {
	available, err := l.batches.ListAvailable()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var foods []string
	for _, b := range available {
		if !seen[b.FoodID] {
			seen[b.FoodID] = true
			foods = append(foods, b.FoodID)
		}
	}
	return foods, nil
}
