package database

import (
	"errors"
	"testing"
)

func TestOpenRunsMigrations(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	tables := []string{
		"current_profile",
		"profile_history",
		"meal_entries",
		"pantry_batches",
		"recent_foods",
	}
	for _, table := range tables {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing after migrations: %v", table, err)
		}
	}

	// migration 00002 rekeys meal entries to string ids
	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('meal_entries') WHERE name = 'id'`).Scan(&count)
	if err != nil {
		t.Fatalf("inspect meal_entries columns: %v", err)
	}
	if count != 1 {
		t.Errorf("meal_entries id column count = %d, want 1", count)
	}
}

func TestIsDuplicateKey(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	insert := `INSERT INTO recent_foods (id, meal_type, food_id, quantity, unit, last_used) VALUES ('breakfast_oats', 'breakfast', 'oats', 60, 'grams', 1)`
	if _, err := db.Exec(insert); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err = db.Exec(insert)
	if err == nil {
		t.Fatal("second insert succeeded, want constraint violation")
	}
	if !IsDuplicateKey(err) {
		t.Errorf("IsDuplicateKey(%v) = false, want true", err)
	}
	if IsDuplicateKey(errors.New("not a constraint error")) {
		t.Error("IsDuplicateKey matched an unrelated error")
	}
	if IsDuplicateKey(nil) {
		t.Error("IsDuplicateKey matched nil")
	}
}
