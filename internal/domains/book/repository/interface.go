package repository

import (
	"context"

	"github.com/google/uuid"

	"book-catalog/internal/domains/book/model"
)

// RepositoryInterface defines data access for books and their author links.
type RepositoryInterface interface {
	// SaveWithAuthors writes the book row (insert or update) and replaces the
	// complete author link set in a single transaction. Partial writes never
	// survive: any failure rolls back both the row and the links.
	// For updates the second result is the cover reference the row held
	// before the write, read under the row lock; nil for inserts or rows
	// without a cover.
	// Errors: ErrBookNotFound, ErrISBNAlreadyExists, ErrAuthorNotFound.
	SaveWithAuthors(ctx context.Context, b *model.Book, authorIDs []uuid.UUID) (*model.Book, *string, error)

	// GetByID loads the book with its author link set.
	// Errors: ErrBookNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// List returns books, optionally filtered by publication year.
	List(ctx context.Context, year *int) ([]model.Book, error)

	// Delete removes the book row; author links go with it via FK cascade.
	// Errors: ErrBookNotFound.
	Delete(ctx context.Context, id uuid.UUID) error

	// ISBNExists reports whether another book already uses the ISBN.
	// excludeID skips the book being updated; pass uuid.Nil for creates.
	ISBNExists(ctx context.Context, isbn string, excludeID uuid.UUID) (bool, error)
}
