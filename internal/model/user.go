package model

import (
	"strings"
	"time"
)

// User represents a person who can own tasks
type User struct {
	ID         UserID    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Business constraints
const (
	MaxNameLength  = 100
	MaxEmailLength = 200
)

// ValidEmail reports whether an email passes the basic format check:
// it must contain both "@" and ".".
func ValidEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

// Touch bumps ModifiedAt. The timestamp never moves backwards.
func (u *User) Touch() {
	if now := time.Now(); now.After(u.ModifiedAt) {
		u.ModifiedAt = now
	}
}

// Clone returns an independent copy of the user.
func (u *User) Clone() *User {
	c := *u
	return &c
}

// CreateUserRequest represents a request to create a user
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate checks field constraints and returns any violations
func (r *CreateUserRequest) Validate() []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(r.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if len(name) > MaxNameLength {
		errs = append(errs, FieldError{Field: "name", Message: "name exceeds maximum length"})
	}

	email := strings.TrimSpace(r.Email)
	switch {
	case email == "":
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	case len(email) > MaxEmailLength:
		errs = append(errs, FieldError{Field: "email", Message: "email exceeds maximum length"})
	case !ValidEmail(email):
		errs = append(errs, FieldError{Field: "email", Message: "email must contain '@' and '.'"})
	}

	return errs
}

// NewUser builds a User from a validated request. Name is trimmed and email
// is trimmed and lowercased.
func (r *CreateUserRequest) NewUser() *User {
	now := time.Now()
	return &User{
		ID:         NewUserID(),
		Name:       strings.TrimSpace(r.Name),
		Email:      strings.ToLower(strings.TrimSpace(r.Email)),
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// UpdateUserRequest represents a partial user update
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// Validate checks every provided field and returns any violations
func (r *UpdateUserRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			errs = append(errs, FieldError{Field: "name", Message: "name is required"})
		} else if len(name) > MaxNameLength {
			errs = append(errs, FieldError{Field: "name", Message: "name exceeds maximum length"})
		}
	}

	if r.Email != nil {
		email := strings.TrimSpace(*r.Email)
		switch {
		case email == "":
			errs = append(errs, FieldError{Field: "email", Message: "email is required"})
		case len(email) > MaxEmailLength:
			errs = append(errs, FieldError{Field: "email", Message: "email exceeds maximum length"})
		case !ValidEmail(email):
			errs = append(errs, FieldError{Field: "email", Message: "email must contain '@' and '.'"})
		}
	}

	return errs
}

// UserRecord is the flat persistence form of a User
type UserRecord struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
}

// Record converts the user to its persistence form
func (u *User) Record() UserRecord {
	return UserRecord{
		ID:         int64(u.ID),
		Name:       u.Name,
		Email:      u.Email,
		CreatedAt:  FormatTime(u.CreatedAt),
		ModifiedAt: FormatTime(u.ModifiedAt),
	}
}

// UserFromRecord rebuilds a user from its persistence form
func UserFromRecord(rec UserRecord) (*User, error) {
	created, err := ParseTime(rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	modified, err := ParseTime(rec.ModifiedAt)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:         UserID(rec.ID),
		Name:       rec.Name,
		Email:      rec.Email,
		CreatedAt:  created,
		ModifiedAt: modified,
	}, nil
}
