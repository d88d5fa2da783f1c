package repository

import (
	"context"

	"github.com/google/uuid"

	"book-catalog/internal/domains/author/model"
)

// RepositoryInterface defines data access for authors.
type RepositoryInterface interface {
	// Create inserts a new author and returns it with ID and timestamps.
	Create(ctx context.Context, a *model.Author) (*model.Author, error)

	// GetByID returns ErrAuthorNotFound if the author does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)

	// GetAll returns all authors ordered by last name.
	GetAll(ctx context.Context) ([]model.Author, error)

	// ExistsByID checks existence without fetching the row.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}
