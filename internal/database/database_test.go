package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/deppfellow/adsfsa-app/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		dialect Dialect
		prefix  string
	}{
		{"sqlite scheme", "sqlite:./adsfsa.db", DialectSQLite, "./adsfsa.db?_pragma="},
		{"sqlite double slash", "sqlite:///tmp/a.db", DialectSQLite, "/tmp/a.db?_pragma="},
		{"file uri", "file:/tmp/a.db", DialectSQLite, "file:/tmp/a.db?_pragma="},
		{"bare path", "data.db", DialectSQLite, "data.db?_pragma="},
		{"existing query", "file:a.db?cache=shared", DialectSQLite, "file:a.db?cache=shared&_pragma="},
		{"postgres", "postgres://u:p@localhost:5432/db", DialectPostgres, "postgres://u:p@localhost:5432/db"},
		{"postgresql", "postgresql://localhost/db", DialectPostgres, "postgresql://localhost/db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialect, dsn, err := ParseURL(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.dialect, dialect)
			assert.Contains(t, dsn, tt.prefix)
		})
	}

	t.Run("sqlite dsn keeps foreign keys off", func(t *testing.T) {
		_, dsn, err := ParseURL("sqlite:x.db")
		require.NoError(t, err)
		assert.Contains(t, dsn, "_pragma=foreign_keys(0)")
	})

	for _, raw := range []string{"", "   ", "sqlite:", "mysql://localhost/db"} {
		_, _, err := ParseURL(raw)
		assert.Error(t, err, "expected error for %q", raw)
	}
}

func TestRebind(t *testing.T) {
	sqliteDB := &Database{Dialect: DialectSQLite}
	pgDB := &Database{Dialect: DialectPostgres}

	query := "UPDATE users SET name = ?, email = ? WHERE id = ?"

	assert.Equal(t, query, sqliteDB.Rebind(query))
	assert.Equal(t, "UPDATE users SET name = $1, email = $2 WHERE id = $3", pgDB.Rebind(query))
	assert.Equal(t, "SELECT 1", pgDB.Rebind("SELECT 1"))
}

func TestSplitStatements(t *testing.T) {
	raw := `
-- leading comment
CREATE TABLE a (id INT);

CREATE TABLE b (id INT);
`
	stmts := splitStatements(raw)
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE a (id INT)", stmts[0])
	assert.Equal(t, "CREATE TABLE b (id INT)", stmts[1])
}

func TestNew_SQLite(t *testing.T) {
	cfg := config.Default()
	cfg.Database.URL = "sqlite:" + filepath.Join(t.TempDir(), "test.db")
	logger := zerolog.Nop()

	db, err := New(cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	assert.Equal(t, DialectSQLite, db.Dialect)
	assert.Same(t, db.DB, db.Handle())
	require.NoError(t, db.Ping(context.Background()))

	for _, table := range []string{"users", "items"} {
		var name string
		err := db.Handle().QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		require.NoError(t, err)
		assert.Equal(t, table, name)
	}

	// Running it again must not fail or drop data.
	_, err = db.Handle().Exec("INSERT INTO users (name, email) VALUES ('a', 'a@x.io')")
	require.NoError(t, err)
	require.NoError(t, db.InitSchema(context.Background()))

	var count int
	require.NoError(t, db.Handle().QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestNew_SQLiteAcceptsDanglingUserID(t *testing.T) {
	cfg := config.Default()
	cfg.Database.URL = filepath.Join(t.TempDir(), "weak.db")
	logger := zerolog.Nop()

	db, err := New(cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	_, err = db.Handle().Exec("INSERT INTO items (title, user_id) VALUES ('orphan', 9999)")
	assert.NoError(t, err)
}

func TestNew_InvalidURL(t *testing.T) {
	cfg := config.Default()
	cfg.Database.URL = "mysql://localhost/db"
	logger := zerolog.Nop()

	_, err := New(cfg, &logger, nil)
	assert.Error(t, err)
}
