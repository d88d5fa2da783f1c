package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	authorrepo "book-catalog/internal/domains/author/repository"
	"book-catalog/internal/domains/subscription/model"
	"book-catalog/internal/domains/subscription/repository"
)

type subscriptionService struct {
	repo    repository.RepositoryInterface
	authors authorrepo.RepositoryInterface
}

func NewSubscriptionService(
	repo repository.RepositoryInterface,
	authors authorrepo.RepositoryInterface,
) ServiceInterface {
	return &subscriptionService{
		repo:    repo,
		authors: authors,
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, req *model.SubscribeRequest) (*model.Subscription, error) {
	email := normalizeContact(req.Email)
	phone := normalizeContact(req.Phone)

	if email == nil && phone == nil {
		return nil, model.ErrInvalidContact
	}

	if email != nil {
		if err := is.Email.Validate(*email); err != nil {
			return nil, model.ErrInvalidEmail
		}
	}

	exists, err := s.authors.ExistsByID(ctx, req.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check author: %w", err)
	}
	if !exists {
		return nil, model.ErrAuthorNotFound
	}

	// Duplicate subscribe requests return the existing row unchanged.
	if existing, err := s.findExisting(ctx, req.AuthorID, email, phone); err == nil {
		return existing, nil
	} else if !errors.Is(err, model.ErrSubscriptionNotFound) {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &model.Subscription{
		AuthorID: req.AuthorID,
		Email:    email,
		Phone:    phone,
	})
	if err != nil {
		// The unique constraint backstops a concurrent subscribe; fall back
		// to the row the other request just created.
		if errors.Is(err, model.ErrDuplicateSubscription) {
			return s.findExisting(ctx, req.AuthorID, email, phone)
		}
		return nil, err
	}

	return created, nil
}

// findExisting searches by email first, then by phone. Both lookups run
// because either contact alone can already be subscribed: a request with a
// new email but a known phone still resolves to the existing row.
func (s *subscriptionService) findExisting(ctx context.Context, authorID uuid.UUID, email, phone *string) (*model.Subscription, error) {
	if email != nil {
		existing, err := s.repo.FindByAuthorAndEmail(ctx, authorID, *email)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, model.ErrSubscriptionNotFound) {
			return nil, err
		}
	}

	if phone != nil {
		return s.repo.FindByAuthorAndPhone(ctx, authorID, *phone)
	}

	return nil, model.ErrSubscriptionNotFound
}

func normalizeContact(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
