// Package migrations holds the versioned schema for the larder database.
// SQL migrations are embedded; Go migrations register themselves with
// goose at init time.
package migrations

import "embed"

// The numbered .go file is embedded alongside the .sql files so goose's
// directory listing pairs it with the migration registered in init.
//
//go:embed *.sql 00002_meal_entry_string_ids.go
var FS embed.FS
