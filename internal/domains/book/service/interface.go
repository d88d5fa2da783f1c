package service

import (
	"context"

	"github.com/google/uuid"

	"book-catalog/internal/domains/book/model"
)

// ServiceInterface is the single entry point for book publication.
type ServiceInterface interface {
	// Publish validates, stores the cover asset if supplied, writes the book
	// row and its author links transactionally, and on a first-time
	// publication fans out subscriber notifications. The returned book
	// carries its assigned ID.
	Publish(ctx context.Context, b *model.Book, image *model.ImageUpload, authorIDs []uuid.UUID) (*model.Book, error)

	// Delete removes the cover asset (best effort) and then the book row.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetByID returns the book together with its public cover URL.
	GetByID(ctx context.Context, id uuid.UUID) (*model.BookResponse, error)

	// List returns books, optionally filtered by publication year.
	List(ctx context.Context, year *int) ([]model.BookResponse, error)
}

// StorageGateway is the slice of the storage layer the service needs.
type StorageGateway interface {
	Upload(ctx context.Context, data []byte, ext, contentType string) (string, error)
	Delete(ctx context.Context, name string) error
	PublicURL(name string) string
}

// NotificationDispatcher fans out subscriber notifications for a newly
// published book. Implementations log their own failures; nothing propagates
// back into the publish result.
type NotificationDispatcher interface {
	NotifySubscribers(ctx context.Context, b *model.Book)
}
