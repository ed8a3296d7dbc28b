package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/deppfellow/adsfsa-app/internal/config"
	"github.com/deppfellow/adsfsa-app/internal/database"
	"github.com/deppfellow/adsfsa-app/internal/sqlerr"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *database.Database {
	t.Helper()

	cfg := config.Default()
	cfg.Database.URL = "sqlite:" + filepath.Join(t.TempDir(), "repo.db")
	logger := zerolog.Nop()

	db, err := database.New(cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func ptr[T any](v T) *T { return &v }

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	alice, err := repo.Create(ctx, "Alice", "alice@x.io")
	require.NoError(t, err)
	assert.Positive(t, alice.ID)
	assert.False(t, alice.CreatedAt.IsZero())

	bob, err := repo.Create(ctx, "Bob", "bob@x.io")
	require.NoError(t, err)
	assert.Greater(t, bob.ID, alice.ID)

	got, err := repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "alice@x.io", got.Email)
	assert.WithinDuration(t, alice.CreatedAt, got.CreatedAt, time.Millisecond)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, bob.ID, users[0].ID, "newest first")

	n, err := repo.Update(ctx, alice.ID, "Alicia", "alicia@x.io")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err = repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.Name)
	assert.True(t, got.UpdatedAt.After(alice.UpdatedAt) || got.UpdatedAt.Equal(alice.UpdatedAt))

	n, err = repo.Delete(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = repo.Delete(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	_, err = repo.GetByID(ctx, alice.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	first, err := repo.Create(ctx, "A", "dup@x.io")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "B", "dup@x.io")
	require.Error(t, err)
	assert.True(t, sqlerr.IsUniqueViolation(err))

	other, err := repo.Create(ctx, "C", "c@x.io")
	require.NoError(t, err)

	_, err = repo.Update(ctx, other.ID, "C", "dup@x.io")
	require.Error(t, err)
	assert.True(t, sqlerr.IsUniqueViolation(err))

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
}

func TestUserRepository_ListEmpty(t *testing.T) {
	users, err := NewUserRepository(newTestDB(t)).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestItemRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	items := NewItemRepository(db)

	owner, err := users.Create(ctx, "Owner", "owner@x.io")
	require.NoError(t, err)

	owned, err := items.Create(ctx, ItemInput{Title: "Task", UserID: &owner.ID})
	require.NoError(t, err)
	assert.Positive(t, owned.ID)
	assert.Nil(t, owned.Description)
	require.NotNil(t, owned.UserID)
	assert.Equal(t, owner.ID, *owned.UserID)
	require.NotNil(t, owned.UserName)
	assert.Equal(t, "Owner", *owned.UserName)
	require.NotNil(t, owned.UserEmail)
	assert.Equal(t, "owner@x.io", *owned.UserEmail)

	loose, err := items.Create(ctx, ItemInput{Title: "Loose", Description: ptr(""), UserID: ptr(int64(0))})
	require.NoError(t, err)
	assert.Nil(t, loose.Description)
	assert.Nil(t, loose.UserID)

	list, err := items.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, loose.ID, list[0].ID)

	n, err := items.Update(ctx, owned.ID, ItemInput{Title: "Task v2", Description: ptr("details")})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := items.GetByID(ctx, owned.ID)
	require.NoError(t, err)
	assert.Equal(t, "Task v2", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, "details", *got.Description)
	assert.Nil(t, got.UserID, "omitted user_id is cleared")
	assert.Nil(t, got.UserName)

	n, err = items.Update(ctx, 424242, ItemInput{Title: "x"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	n, err = items.Delete(ctx, owned.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = items.GetByID(ctx, owned.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestItemRepository_WeakUserReference(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	items := NewItemRepository(db)

	dangling, err := items.Create(ctx, ItemInput{Title: "Orphan", UserID: ptr(int64(9999))})
	require.NoError(t, err)
	require.NotNil(t, dangling.UserID)
	assert.EqualValues(t, 9999, *dangling.UserID)
	assert.Nil(t, dangling.UserName)
	assert.Nil(t, dangling.UserEmail)

	owner, err := users.Create(ctx, "Gone", "gone@x.io")
	require.NoError(t, err)
	it, err := items.Create(ctx, ItemInput{Title: "Kept", UserID: &owner.ID})
	require.NoError(t, err)

	_, err = users.Delete(ctx, owner.ID)
	require.NoError(t, err)

	got, err := items.GetByID(ctx, it.ID)
	require.NoError(t, err, "deleting a user does not cascade")
	require.NotNil(t, got.UserID)
	assert.Nil(t, got.UserName)
}

func TestTimeScanner(t *testing.T) {
	var ts time.Time
	s := timeScanner{&ts}

	require.NoError(t, s.Scan("2024-05-01 10:20:30"))
	assert.Equal(t, time.Date(2024, 5, 1, 10, 20, 30, 0, time.UTC), ts)

	require.NoError(t, s.Scan([]byte("2024-05-01 10:20:30.5+02:00")))
	assert.Equal(t, time.Date(2024, 5, 1, 8, 20, 30, 500000000, time.UTC), ts)

	require.NoError(t, s.Scan("2024-05-01T10:20:30Z"))
	assert.Equal(t, 2024, ts.Year())

	assert.Error(t, s.Scan("yesterday"))
	assert.Error(t, s.Scan(42))
}
