package database

import (
	"context"
	"embed"
	"fmt"
	"strings"
)

// Schema files are carried inside the binary.
//
//go:embed schema/*.sql
var schemaFiles embed.FS

// InitSchema creates the users and items tables when they do not exist.
// It is safe to run on every startup.
func (db *Database) InitSchema(ctx context.Context) error {
	name := "schema/" + string(db.Dialect) + ".sql"

	raw, err := schemaFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}

	for _, stmt := range splitStatements(string(raw)) {
		if _, err := db.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating database schema: %w", err)
		}
	}

	db.log.Info().Str("dialect", string(db.Dialect)).Msg("database schema ready")
	return nil
}

// splitStatements cuts a schema file on `;`, dropping blank chunks and
// `--` comment lines.
func splitStatements(raw string) []string {
	var stmts []string
	for _, chunk := range strings.Split(raw, ";") {
		var lines []string
		for _, line := range strings.Split(chunk, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}

		stmt := strings.TrimSpace(strings.Join(lines, "\n"))
		if stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
