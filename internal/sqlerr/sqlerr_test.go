package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/adsfsa-app/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func sqliteUniqueViolation(t *testing.T) error {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT NOT NULL UNIQUE)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO users (email) VALUES ('a@x.io')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO users (email) VALUES ('a@x.io')`)
	require.Error(t, err)
	return err
}

func TestClassify_SQLiteUnique(t *testing.T) {
	err := sqliteUniqueViolation(t)

	sqlErr := Classify(err)
	require.NotNil(t, sqlErr)
	assert.Equal(t, UniqueViolation, sqlErr.Code)
	assert.Equal(t, "users", sqlErr.TableName)
	assert.Equal(t, "email", sqlErr.ColumnName)

	assert.True(t, IsUniqueViolation(err))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create user: %w", err)))
}

func TestClassify_PgError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "users_email_key"`,
		TableName:      "users",
		ConstraintName: "users_email_key",
	}

	sqlErr := Classify(fmt.Errorf("insert: %w", pgErr))
	require.NotNil(t, sqlErr)
	assert.Equal(t, UniqueViolation, sqlErr.Code)
	assert.Equal(t, SeverityError, sqlErr.Severity)
	assert.Equal(t, "23505", sqlErr.DatabaseCode)
	assert.ErrorIs(t, sqlErr, pgErr)
	assert.True(t, IsUniqueViolation(pgErr))

	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23502"}))
}

func TestClassify_MessageFallback(t *testing.T) {
	err := errors.New("UNIQUE constraint failed: users.email")
	assert.True(t, IsUniqueViolation(err))

	assert.Nil(t, Classify(errors.New("connection reset")))
	assert.Nil(t, Classify(nil))
	assert.False(t, IsUniqueViolation(sql.ErrNoRows))
	assert.False(t, IsUniqueViolation(nil))
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, Other, MapCode("42P01"))
}

func TestHandleError(t *testing.T) {
	t.Run("unique violation becomes conflict", func(t *testing.T) {
		err := HandleError(sqliteUniqueViolation(t))

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusConflict, httpErr.Status)
		assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
		assert.Equal(t, "A User with this Email already exists", httpErr.Message)
	})

	t.Run("not null violation lists the field", func(t *testing.T) {
		err := HandleError(&pgconn.PgError{Code: "23502", TableName: "items", ColumnName: "title"})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "ITEM_REQUIRED", httpErr.Code)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "title", httpErr.Errors[0].Field)
	})

	t.Run("no rows becomes not found", func(t *testing.T) {
		var httpErr *errs.HTTPError
		require.ErrorAs(t, HandleError(sql.ErrNoRows), &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})

	t.Run("http errors pass through", func(t *testing.T) {
		in := errs.NewNotFoundError("User not found", true, nil)
		assert.Same(t, in, HandleError(in))
	})

	t.Run("unknown error becomes internal", func(t *testing.T) {
		var httpErr *errs.HTTPError
		require.ErrorAs(t, HandleError(errors.New("boom")), &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	})
}
