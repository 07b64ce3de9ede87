package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upMealEntryStringIDs, downMealEntryStringIDs)
}

func upMealEntryStringIDs(ctx context.Context, tx *sql.Tx) error {
	return MigrateMealEntryIDs(ctx, tx)
}

// MigrateMealEntryIDs rebuilds the meal log under a string id primary
// key, backfilling each legacy row's id from its stringified timestamp,
// and adds the date, food and timestamp indexes. Every step is guarded
// by a shape check, so a partially applied run can be repeated safely.
func MigrateMealEntryIDs(ctx context.Context, tx *sql.Tx) error {
	migrated, err := tableHasColumn(ctx, tx, "meal_entries", "id")
	if err != nil {
		return err
	}

	if !migrated {
		if _, err := tx.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS meal_entries_v2 (
				id TEXT PRIMARY KEY,
				food_id TEXT NOT NULL,
				food TEXT NOT NULL,
				quantity_grams REAL NOT NULL,
				quantity_units REAL NOT NULL,
				unit TEXT NOT NULL,
				meal_type TEXT NOT NULL,
				timestamp INTEGER NOT NULL,
				date TEXT NOT NULL,
				pantry_deductions TEXT NOT NULL DEFAULT '[]'
			)`); err != nil {
			return fmt.Errorf("create v2 table: %w", err)
		}

		oldExists, err := tableExists(ctx, tx, "meal_entries")
		if err != nil {
			return err
		}
		if oldExists {
			// Copy every legacy row forward before the old structure
			// is discarded. OR IGNORE makes a repeated copy a no-op.
			if _, err := tx.ExecContext(ctx, `
				INSERT OR IGNORE INTO meal_entries_v2
					(id, food_id, food, quantity_grams, quantity_units, unit, meal_type, timestamp, date, pantry_deductions)
				SELECT CAST(timestamp AS TEXT), food_id, food, quantity_grams, quantity_units,
					unit, meal_type, timestamp, date, COALESCE(pantry_deductions, '[]')
				FROM meal_entries`); err != nil {
				return fmt.Errorf("copy entries forward: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `DROP TABLE meal_entries`); err != nil {
				return fmt.Errorf("drop v1 table: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx, `ALTER TABLE meal_entries_v2 RENAME TO meal_entries`); err != nil {
			return fmt.Errorf("rename v2 table: %w", err)
		}
	}

	for _, stmt := range []string{
		`CREATE INDEX IF NOT EXISTS idx_meal_entries_date ON meal_entries(date)`,
		`CREATE INDEX IF NOT EXISTS idx_meal_entries_food_id ON meal_entries(food_id)`,
		`CREATE INDEX IF NOT EXISTS idx_meal_entries_timestamp ON meal_entries(timestamp)`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}

func downMealEntryStringIDs(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE meal_entries_v1 (
			timestamp INTEGER PRIMARY KEY,
			date TEXT NOT NULL,
			food_id TEXT NOT NULL,
			food TEXT NOT NULL,
			quantity_grams REAL NOT NULL,
			quantity_units REAL NOT NULL,
			unit TEXT NOT NULL,
			meal_type TEXT NOT NULL,
			pantry_deductions TEXT
		)`); err != nil {
		return fmt.Errorf("create v1 table: %w", err)
	}

	// Entries logged at the same instant collapse onto one timestamp key.
	if _, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO meal_entries_v1
			(timestamp, date, food_id, food, quantity_grams, quantity_units, unit, meal_type, pantry_deductions)
		SELECT timestamp, date, food_id, food, quantity_grams, quantity_units, unit, meal_type, pantry_deductions
		FROM meal_entries`); err != nil {
		return fmt.Errorf("copy entries back: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DROP TABLE meal_entries`); err != nil {
		return fmt.Errorf("drop v2 table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `ALTER TABLE meal_entries_v1 RENAME TO meal_entries`); err != nil {
		return fmt.Errorf("rename v1 table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `CREATE INDEX idx_meal_entries_date ON meal_entries(date)`); err != nil {
		return fmt.Errorf("create date index: %w", err)
	}
	return nil
}

func tableExists(ctx context.Context, tx *sql.Tx, name string) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check table %q: %w", name, err)
	}
	return n > 0, nil
}

func tableHasColumn(ctx context.Context, tx *sql.Tx, table, column string) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check column %s.%s: %w", table, column, err)
	}
	return n > 0, nil
}
