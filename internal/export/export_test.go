package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/larderhq/larder/internal/database"
)

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	livePath := filepath.Join(dir, "live.db")

	db, err := database.Open(livePath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := db.Exec(
		`INSERT INTO recent_foods (id, meal_type, food_id, quantity, unit, last_used) VALUES ('lunch_salmon', 'lunch', 'salmon', 150, 'grams', 42)`,
	); err != nil {
		t.Fatalf("seed: %v", err)
	}

	exportPath := filepath.Join(dir, "backup.larder")
	if err := Export(db, exportPath, "correct horse"); err != nil {
		t.Fatalf("export: %v", err)
	}
	db.Close()

	// ciphertext must not leak the plaintext sqlite header
	raw, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(raw) < 16 {
		t.Fatalf("export too small: %d bytes", len(raw))
	}
	if string(raw[:15]) == "SQLite format 3" {
		t.Fatal("export file is unencrypted")
	}

	restorePath := filepath.Join(dir, "restored.db")
	if err := Import(exportPath, restorePath, "correct horse"); err != nil {
		t.Fatalf("import: %v", err)
	}

	restored, err := database.Open(restorePath)
	if err != nil {
		t.Fatalf("open restored: %v", err)
	}
	defer restored.Close()

	var foodID string
	err = restored.QueryRow(`SELECT food_id FROM recent_foods WHERE id = 'lunch_salmon'`).Scan(&foodID)
	if err != nil {
		t.Fatalf("query restored: %v", err)
	}
	if foodID != "salmon" {
		t.Errorf("restored food_id = %q, want %q", foodID, "salmon")
	}
}

func TestImportWrongPassphrase(t *testing.T) {
	dir := t.TempDir()
	livePath := filepath.Join(dir, "live.db")

	db, err := database.Open(livePath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	exportPath := filepath.Join(dir, "backup.larder")
	if err := Export(db, exportPath, "right"); err != nil {
		t.Fatalf("export: %v", err)
	}

	restorePath := filepath.Join(dir, "restored.db")
	if err := Import(exportPath, restorePath, "wrong"); err == nil {
		t.Fatal("import with wrong passphrase succeeded")
	}
	if _, err := os.Stat(restorePath); !os.IsNotExist(err) {
		t.Error("failed import left a database file behind")
	}
}

func TestExportRequiresPassphrase(t *testing.T) {
	dir := t.TempDir()
	db, err := database.Open(filepath.Join(dir, "live.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if err := Export(db, filepath.Join(dir, "out"), ""); err == nil {
		t.Fatal("export with empty passphrase succeeded")
	}
}
