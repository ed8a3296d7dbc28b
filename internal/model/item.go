package model

import "time"

// Item is a row of the items table.
//
// UserID is a weak reference: it may point at a user that never existed
// or was deleted. UserName and UserEmail come from a left join and are
// null whenever the reference does not resolve.
type Item struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	UserID      *int64    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserName    *string   `json:"user_name"`
	UserEmail   *string   `json:"user_email"`
}
