// Package export writes passphrase-encrypted snapshots of the live
// database to local files and restores them.
package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Export snapshots the live database with VACUUM INTO and writes the
// encrypted snapshot to dstPath. The snapshot is consistent even with
// the database open.
func Export(db *sql.DB, dstPath, passphrase string) error {
	if passphrase == "" {
		return fmt.Errorf("export: passphrase required")
	}

	snapshot := filepath.Join(os.TempDir(), fmt.Sprintf("larder-export-%d.db", time.Now().UnixNano()))
	defer os.Remove(snapshot)

	// VACUUM INTO refuses to overwrite an existing file.
	if _, err := db.Exec(`VACUUM INTO ?`, snapshot); err != nil {
		return fmt.Errorf("snapshot database: %w", err)
	}

	plaintext, err := os.ReadFile(snapshot)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	ciphertext, err := encrypt(plaintext, passphrase)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dstPath, ciphertext, 0600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// Import decrypts the snapshot at srcPath, verifies its integrity, and
// writes it to dbPath. The live database handle for dbPath must be
// closed before calling this; the next Open picks up the restored data
// and re-runs any pending migrations.
func Import(srcPath, dbPath, passphrase string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("read export: %w", err)
	}
	plaintext, err := decrypt(data, passphrase)
	if err != nil {
		return err
	}

	restored := filepath.Join(os.TempDir(), fmt.Sprintf("larder-import-%d.db", time.Now().UnixNano()))
	defer os.Remove(restored)
	if err := os.WriteFile(restored, plaintext, 0600); err != nil {
		return fmt.Errorf("write restored snapshot: %w", err)
	}

	if err := verifyIntegrity(restored); err != nil {
		return err
	}

	if err := os.WriteFile(dbPath, plaintext, 0600); err != nil {
		return fmt.Errorf("write database: %w", err)
	}
	return nil
}

func verifyIntegrity(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open restored snapshot: %w", err)
	}
	defer db.Close()

	var result string
	if err := db.QueryRow(`PRAGMA integrity_check`).Scan(&result); err != nil {
		return fmt.Errorf("integrity check: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("restored snapshot failed integrity check: %s", result)
	}
	return nil
}
