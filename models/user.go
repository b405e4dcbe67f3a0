package models

import "time"

// User represents a user in the directory. IDs are assigned by the store,
// monotonically increasing and never reused after deletion.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUserRequest represents the request body for creating a user.
// Fields decode loosely so the handler can tell an absent field from a
// present non-string one; validation messages and ordering stay under its
// control.
type CreateUserRequest struct {
	Name  any `json:"name"`
	Email any `json:"email"`
}

// UpdateUserRequest represents the request body for a partial update.
// A nil field means "not provided" and leaves the stored value unchanged;
// JSON null is treated the same as an absent field.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Pagination describes the page window a list response covers.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalUsers  int  `json:"totalUsers"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// ListUsersResponse is the body of a successful list request.
type ListUsersResponse struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

// DeletedUser is the summary echoed back by a successful delete.
type DeletedUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
