package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/deppfellow/adsfsa-app/internal/database"
	"github.com/deppfellow/adsfsa-app/internal/model"
)

type UserRepository struct {
	db *database.Database
}

func NewUserRepository(db *database.Database) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, name, email, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		timeScanner{&u.CreatedAt},
		timeScanner{&u.UpdatedAt},
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns every user, newest first.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Handle().QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// GetByID returns the user with the given id, or an error wrapping
// sql.ErrNoRows when there is none.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := r.db.Handle().QueryRowContext(ctx,
		r.db.Rebind("SELECT "+userColumns+" FROM users WHERE id = ?"), id)

	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return u, nil
}

// Create inserts a user and returns the stored record. A duplicate email
// surfaces as the driver's unique-violation error.
func (r *UserRepository) Create(ctx context.Context, name, email string) (*model.User, error) {
	ts := now()

	u := &model.User{
		Name:      name,
		Email:     email,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	err := r.db.Handle().QueryRowContext(ctx,
		r.db.Rebind("INSERT INTO users (name, email, created_at, updated_at) VALUES (?, ?, ?, ?) RETURNING id"),
		name, email, ts, ts,
	).Scan(&u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return u, nil
}

// Update overwrites name and email and refreshes updated_at. It returns
// the number of rows changed (0 when the id does not exist).
func (r *UserRepository) Update(ctx context.Context, id int64, name, email string) (int64, error) {
	res, err := r.db.Handle().ExecContext(ctx,
		r.db.Rebind("UPDATE users SET name = ?, email = ?, updated_at = ? WHERE id = ?"),
		name, email, now(), id,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return rowsAffected(res)
}

// Delete removes the user. Items referencing it are left untouched.
func (r *UserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.Handle().ExecContext(ctx,
		r.db.Rebind("DELETE FROM users WHERE id = ?"), id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return rowsAffected(res)
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}
