// Package meallog records meal events and composes the pantry ledger
// transactions they cause. A logged meal and its batch deductions are
// one commit; deleting a meal replays its deductions in reverse.
package meallog

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/larderhq/larder/internal/ledger"
	"github.com/larderhq/larder/internal/model"
	"github.com/larderhq/larder/internal/store"
)

type MealLog struct {
	db      *sql.DB
	ledger  *ledger.Ledger
	entries *store.MealEntryStore
	recents *store.RecentSelectionStore
}

func New(db *sql.DB, l *ledger.Ledger) *MealLog {
	return &MealLog{
		db:      db,
		ledger:  l,
		entries: store.NewMealEntryStore(db),
		recents: store.NewRecentSelectionStore(db),
	}
}

// LogMeal consumes the requested quantity from the pantry FIFO and
// records the meal entry carrying the resulting deductions, all in one
// transaction. On ErrInsufficientStock nothing is persisted.
//
// Quantity semantics: with UnitGrams the quantity is passed to the
// ledger as-is (grams-denominated stock counts one unit per gram) and
// stored as the entry's grams. With UnitUnits the stored gram total is
// the pre-consumption weighted-average estimate; the ledger's internal
// per-batch grams may differ slightly and that divergence is accepted.
func (m *MealLog) LogMeal(food model.FoodItem, mealType model.MealType, date string, quantity float64, unit model.Unit, at time.Time) (*model.MealEntry, error) {
	if !model.ValidMealType(mealType) {
		return nil, fmt.Errorf("invalid meal type %q", mealType)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %v", ledger.ErrInvalidQuantity, quantity)
	}

	quantityGrams := quantity
	if unit == model.UnitUnits {
		perUnit, err := m.ledger.EstimateGramsPerUnit(food.ID)
		if err != nil {
			return nil, err
		}
		quantityGrams = quantity * perUnit
	}

	tx, err := m.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin log meal: %w", err)
	}
	defer tx.Rollback()

	_, deductions, err := m.ledger.ConsumeFIFOTx(tx, food.ID, quantity)
	if err != nil {
		return nil, err
	}

	entry := &model.MealEntry{
		ID:               uuid.NewString(),
		FoodID:           food.ID,
		Food:             food,
		QuantityGrams:    quantityGrams,
		QuantityUnits:    quantity,
		Unit:             unit,
		MealType:         mealType,
		Timestamp:        at.UnixMilli(),
		Date:             date,
		PantryDeductions: deductions,
	}
	if err := m.entries.WithTx(tx).Insert(entry); err != nil {
		return nil, err
	}

	if err := m.recents.WithTx(tx).Upsert(model.RecentSelection{
		ID:       model.RecentSelectionID(mealType, food.ID),
		MealType: mealType,
		FoodID:   food.ID,
		Quantity: quantity,
		Unit:     unit,
		LastUsed: at.UnixMilli(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit log meal: %w", err)
	}
	return entry, nil
}

// DeleteMeal reverses the entry's recorded deductions and removes it,
// in one transaction. Deductions whose batch was removed since are
// skipped; entries that predate deduction tracking delete without any
// ledger effect. Deleting a missing entry is a no-op.
func (m *MealLog) DeleteMeal(id string) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete meal: %w", err)
	}
	defer tx.Rollback()

	entries := m.entries.WithTx(tx)
	entry, err := entries.GetByID(id)
	if err != nil {
		return err
	}
	if entry == nil {
		return nil
	}

	if len(entry.PantryDeductions) > 0 {
		skipped, err := m.ledger.ReverseConsumptionTx(tx, entry.PantryDeductions)
		if err != nil {
			return err
		}
		if len(skipped) > 0 {
			slog.Warn("meal deletion only partially restored stock",
				"meal_id", id, "skipped_batches", len(skipped))
		}
	}

	if err := entries.Delete(id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete meal: %w", err)
	}
	return nil
}

// MealsForDate returns the day's entries in log order.
func (m *MealLog) MealsForDate(date string) ([]model.MealEntry, error) {
	return m.entries.ListByDate(date)
}

// MealsForFood returns every entry that logged the given food.
func (m *MealLog) MealsForFood(foodID string) ([]model.MealEntry, error) {
	return m.entries.ListByFood(foodID)
}

// Meal returns one entry, or nil if it does not exist.
func (m *MealLog) Meal(id string) (*model.MealEntry, error) {
	return m.entries.GetByID(id)
}

// RecentForMealType returns the slot's most recently used selections.
func (m *MealLog) RecentForMealType(mealType model.MealType, limit int) ([]model.RecentSelection, error) {
	return m.recents.ForMealType(mealType, limit)
}
