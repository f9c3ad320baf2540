package users

import "time"

// User represents a managed user record.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Website   string    `json:"website,omitempty"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserRequest carries the fields accepted when creating a user.
type CreateUserRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Website string `json:"website,omitempty" validate:"omitempty,max=255"`
	Company string `json:"company,omitempty" validate:"omitempty,max=255"`
}

// UpdateUserRequest carries the mutable fields of an existing user.
// All fields are overwritten on update; CreatedAt is preserved.
type UpdateUserRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Website string `json:"website,omitempty" validate:"omitempty,max=255"`
	Company string `json:"company,omitempty" validate:"omitempty,max=255"`
}
