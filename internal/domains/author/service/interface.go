package service

import (
	"context"

	"github.com/google/uuid"

	"book-catalog/internal/domains/author/model"
)

// ServiceInterface defines business operations for authors.
type ServiceInterface interface {
	// Create validates the request and persists a new author.
	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)

	// GetByID returns ErrAuthorNotFound if the author does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)

	// GetAll returns all authors for listing and form selects.
	GetAll(ctx context.Context) ([]model.Author, error)
}
