package model

import "github.com/deppfellow/adsfsa-app/internal/validation"

const (
	msgUserFieldsRequired = "Name and email are required"
	msgTitleRequired      = "Title is required"
)

// ListRequest is bound by endpoints that take no input.
type ListRequest struct{}

func (r *ListRequest) Validate() error { return nil }

// IDRequest carries the :id path parameter. It stays a string: an id
// that is not a number simply matches no row.
type IDRequest struct {
	ID string `param:"id" json:"-"`
}

func (r *IDRequest) Validate() error { return nil }

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

func (r *CreateUserRequest) Validate() error { return validation.Struct(r) }

func (r *CreateUserRequest) ValidationMessage() string { return msgUserFieldsRequired }

type UpdateUserRequest struct {
	ID    string `param:"id" json:"-"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

func (r *UpdateUserRequest) Validate() error { return validation.Struct(r) }

func (r *UpdateUserRequest) ValidationMessage() string { return msgUserFieldsRequired }

// CreateItemRequest: Description and UserID are optional; "" and 0 are
// stored as null.
type CreateItemRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	UserID      *int64  `json:"user_id"`
}

func (r *CreateItemRequest) Validate() error { return validation.Struct(r) }

func (r *CreateItemRequest) ValidationMessage() string { return msgTitleRequired }

// UpdateItemRequest overwrites all three fields; omitted optional
// fields are cleared.
type UpdateItemRequest struct {
	ID          string  `param:"id" json:"-"`
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	UserID      *int64  `json:"user_id"`
}

func (r *UpdateItemRequest) Validate() error { return validation.Struct(r) }

func (r *UpdateItemRequest) ValidationMessage() string { return msgTitleRequired }
