// Package database owns the process-wide store connection.
//
// It opens exactly one connection for the lifetime of the process,
// either to a file-based SQLite store (modernc.org/sqlite) or to
// PostgreSQL (pgx through database/sql), creates the schema and hands
// the live handle to the repositories.
//
// It handles:
//   - parsing DATABASE_URL into a dialect and driver DSN
//   - wiring query tracing/logging for pgx (tracelog, nrpgx5)
//   - pinging the store so startup fails fast
//   - idempotent schema creation
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/deppfellow/adsfsa-app/internal/config"
	loggerConfig "github.com/deppfellow/adsfsa-app/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

// Dialect names the SQL flavour behind the connection.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Database wraps the single store connection and a logger.
// It is created once in server.New and shared by every repository.
type Database struct {
	DB      *sql.DB
	Dialect Dialect
	log     *zerolog.Logger
}

// multiTracer allows chaining multiple tracers.
//
// pgx supports a single Tracer in ConnConfig, so New Relic and the local
// SQL logger are run through this adapter when both are enabled.
type multiTracer struct {
	tracers []any
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryStart(context.Context, *pgx.Conn, pgx.TraceQueryStartData) context.Context
		}); ok {
			ctx = t.TraceQueryStart(ctx, conn, data)
		}
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData)
		}); ok {
			t.TraceQueryEnd(ctx, conn, data)
		}
	}
}

// DatabasePingTimeout is the number of seconds to wait for a ping
// before considering the store unreachable.
const DatabasePingTimeout = 10

// sqlitePragmas are applied to every SQLite connection through the DSN.
//
// foreign_keys stays off: items.user_id is a weak reference and inserts
// with an unknown user id must succeed.
var sqlitePragmas = []string{
	"_pragma=busy_timeout(5000)",
	"_pragma=journal_mode(WAL)",
	"_pragma=foreign_keys(0)",
	"_time_format=sqlite",
}

// ParseURL splits a DATABASE_URL into its dialect and the DSN the driver
// expects.
//
//	sqlite:./adsfsa.db            -> sqlite, ./adsfsa.db?_pragma=...
//	file:/tmp/x.db                -> sqlite, file:/tmp/x.db?_pragma=...
//	./adsfsa.db                   -> sqlite, ./adsfsa.db?_pragma=...
//	postgres://u:p@host:5432/db   -> postgres, unchanged
func ParseURL(raw string) (Dialect, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("database url is empty")
	}

	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		return DialectPostgres, raw, nil
	}

	path := raw
	switch {
	case strings.HasPrefix(path, "sqlite://"):
		path = strings.TrimPrefix(path, "sqlite://")
	case strings.HasPrefix(path, "sqlite:"):
		path = strings.TrimPrefix(path, "sqlite:")
	}

	if path == "" {
		return "", "", fmt.Errorf("database url %q has no path", raw)
	}
	if strings.Contains(path, "://") {
		return "", "", fmt.Errorf("unsupported database url scheme in %q", raw)
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return DialectSQLite, path + sep + strings.Join(sqlitePragmas, "&"), nil
}

// New opens the store connection, pings it and creates the schema.
//
// Inputs:
//   - cfg: application config (DATABASE_URL, environment)
//   - logger: main app logger
//   - loggerService: optional New Relic service (nil if not configured)
//
// Any error here is fatal for startup.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	dialect, dsn, err := ParseURL(cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	switch dialect {
	case DialectPostgres:
		db, err = openPostgres(cfg, dsn, logger, loggerService)
	default:
		db, err = sql.Open("sqlite", dsn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	// One connection for the whole process. database/sql queues callers
	// while it is busy.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	database := &Database{
		DB:      db,
		Dialect: dialect,
		log:     logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()

	if err := database.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := database.InitSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info().Str("dialect", string(dialect)).Msg("connected to the database")

	return database, nil
}

// openPostgres builds a pgx connection config with tracers attached and
// exposes it as a *sql.DB.
func openPostgres(cfg *config.Config, dsn string, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*sql.DB, error) {
	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx config: %w", err)
	}

	if loggerService != nil && loggerService.GetApplication() != nil {
		connConfig.Tracer = nrpgx5.NewTracer()
	}

	// SQL statement logging is very noisy, so it only runs in local.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		localTracer := &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		}

		if connConfig.Tracer != nil {
			connConfig.Tracer = &multiTracer{
				tracers: []any{connConfig.Tracer, localTracer},
			}
		} else {
			connConfig.Tracer = localTracer
		}
	}

	return stdlib.OpenDB(*connConfig), nil
}

// Handle returns the live connection handle.
func (db *Database) Handle() *sql.DB {
	return db.DB
}

// Rebind rewrites `?` placeholders into the dialect's bind syntax.
// SQLite accepts `?` as is; PostgreSQL needs `$1, $2, ...`.
func (db *Database) Rebind(query string) string {
	if db.Dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// Ping verifies the connection is alive.
func (db *Database) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}

// Close releases the connection. Errors are logged, not returned:
// shutdown proceeds regardless.
func (db *Database) Close() {
	db.log.Info().Msg("closing database connection")
	if err := db.DB.Close(); err != nil {
		db.log.Error().Err(err).Msg("failed to close database connection")
	}
}
