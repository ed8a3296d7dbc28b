package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/deppfellow/adsfsa-app/internal/database"
	"github.com/deppfellow/adsfsa-app/internal/model"
)

type ItemRepository struct {
	db *database.Database
}

func NewItemRepository(db *database.Database) *ItemRepository {
	return &ItemRepository{db: db}
}

// ItemInput carries the writable item fields. Nil or empty Description
// and nil or zero UserID are stored as NULL.
type ItemInput struct {
	Title       string
	Description *string
	UserID      *int64
}

// selectItems joins the owning user, if any. A dangling user_id yields
// NULL name and email.
const selectItems = `SELECT i.id, i.title, i.description, i.user_id, i.created_at, i.updated_at, u.name, u.email
FROM items i
LEFT JOIN users u ON i.user_id = u.id`

func scanItem(row interface{ Scan(...any) error }) (*model.Item, error) {
	var (
		it          model.Item
		description sql.NullString
		userID      sql.NullInt64
		userName    sql.NullString
		userEmail   sql.NullString
	)

	if err := row.Scan(
		&it.ID,
		&it.Title,
		&description,
		&userID,
		timeScanner{&it.CreatedAt},
		timeScanner{&it.UpdatedAt},
		&userName,
		&userEmail,
	); err != nil {
		return nil, err
	}

	it.Description = stringPtr(description)
	it.UserID = int64Ptr(userID)
	it.UserName = stringPtr(userName)
	it.UserEmail = stringPtr(userEmail)

	return &it, nil
}

// List returns every item with its owner's name and email, newest first.
func (r *ItemRepository) List(ctx context.Context) ([]model.Item, error) {
	rows, err := r.db.Handle().QueryContext(ctx,
		selectItems+" ORDER BY i.created_at DESC, i.id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// GetByID returns one item, or an error wrapping sql.ErrNoRows.
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	row := r.db.Handle().QueryRowContext(ctx,
		r.db.Rebind(selectItems+" WHERE i.id = ?"), id)

	it, err := scanItem(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}
	return it, nil
}

// Create inserts an item and returns the stored record, joined with its
// owner when the reference resolves. The user id is not checked.
func (r *ItemRepository) Create(ctx context.Context, in ItemInput) (*model.Item, error) {
	ts := now()

	var id int64
	err := r.db.Handle().QueryRowContext(ctx,
		r.db.Rebind("INSERT INTO items (title, description, user_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?) RETURNING id"),
		in.Title, nullableString(in.Description), nullableID(in.UserID), ts, ts,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Update overwrites title, description and user_id and refreshes
// updated_at. Omitted optional fields are cleared.
func (r *ItemRepository) Update(ctx context.Context, id int64, in ItemInput) (int64, error) {
	res, err := r.db.Handle().ExecContext(ctx,
		r.db.Rebind("UPDATE items SET title = ?, description = ?, user_id = ?, updated_at = ? WHERE id = ?"),
		in.Title, nullableString(in.Description), nullableID(in.UserID), now(), id,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update item %d: %w", id, err)
	}
	return rowsAffected(res)
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.Handle().ExecContext(ctx,
		r.db.Rebind("DELETE FROM items WHERE id = ?"), id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	return rowsAffected(res)
}
