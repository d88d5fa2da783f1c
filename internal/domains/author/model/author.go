package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Author represents a book author.
type Author struct {
	ID         uuid.UUID `json:"id" db:"id"`
	LastName   string    `json:"last_name" db:"last_name"`
	FirstName  string    `json:"first_name" db:"first_name"`
	MiddleName *string   `json:"middle_name" db:"middle_name"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// FullName joins last, first and middle name, skipping empty parts.
func (a *Author) FullName() string {
	parts := []string{a.LastName, a.FirstName}
	if a.MiddleName != nil {
		parts = append(parts, *a.MiddleName)
	}

	nonEmpty := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}

	return strings.Join(nonEmpty, " ")
}

// CreateAuthorRequest is the payload for creating an author.
type CreateAuthorRequest struct {
	LastName   string  `json:"last_name"`
	FirstName  string  `json:"first_name"`
	MiddleName *string `json:"middle_name"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.MiddleName, validation.Length(0, 100)),
	)
}
