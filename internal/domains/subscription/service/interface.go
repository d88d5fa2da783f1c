package service

import (
	"context"

	"book-catalog/internal/domains/subscription/model"
)

// ServiceInterface defines the subscribe operation.
type ServiceInterface interface {
	// Subscribe registers interest in an author's new books. At least one of
	// email/phone must be supplied. Subscribing twice with the same contact
	// is a no-op success returning the existing subscription.
	// Errors: ErrInvalidContact, ErrInvalidEmail, ErrAuthorNotFound.
	Subscribe(ctx context.Context, req *model.SubscribeRequest) (*model.Subscription, error)
}
