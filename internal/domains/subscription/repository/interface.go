package repository

import (
	"context"

	"github.com/google/uuid"

	"book-catalog/internal/domains/subscription/model"
)

// RepositoryInterface defines data access for subscriptions.
type RepositoryInterface interface {
	// Create persists a new subscription.
	// Errors: ErrDuplicateSubscription (unique constraint backstop),
	// ErrAuthorNotFound (FK violation).
	Create(ctx context.Context, s *model.Subscription) (*model.Subscription, error)

	// FindByAuthorAndEmail returns ErrSubscriptionNotFound on a miss.
	FindByAuthorAndEmail(ctx context.Context, authorID uuid.UUID, email string) (*model.Subscription, error)

	// FindByAuthorAndPhone returns ErrSubscriptionNotFound on a miss.
	FindByAuthorAndPhone(ctx context.Context, authorID uuid.UUID, phone string) (*model.Subscription, error)

	// FindByAuthorIDs loads every subscription for any of the authors,
	// together with the author for message building.
	FindByAuthorIDs(ctx context.Context, authorIDs []uuid.UUID) ([]model.SubscriptionWithAuthor, error)
}
