package mariadb

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed schema.sql
var schemaSQL string

// Statements memecah schema.sql per pernyataan ";" agar bisa dieksekusi
// satu per satu (lebih mudah dilacak bila ada yang gagal).
func Statements() []string {
	var out []string
	for _, s := range strings.Split(schemaSQL, ";") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Migrate membuat seluruh tabel bila belum ada. Aman dijalankan berulang.
func Migrate(ctx context.Context, db *sql.DB) (int, error) {
	stmts := Statements()
	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return i, fmt.Errorf("migrasi pernyataan ke-%d: %w", i+1, err)
		}
	}
	return len(stmts), nil
}
