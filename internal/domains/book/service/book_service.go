package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/domains/book/repository"
)

type bookService struct {
	repo       repository.RepositoryInterface
	storage    StorageGateway
	dispatcher NotificationDispatcher
}

// NewBookService wires the orchestrator with its collaborators. All three are
// injected; the service holds no ambient state.
func NewBookService(
	repo repository.RepositoryInterface,
	storage StorageGateway,
	dispatcher NotificationDispatcher,
) ServiceInterface {
	return &bookService{
		repo:       repo,
		storage:    storage,
		dispatcher: dispatcher,
	}
}

func (s *bookService) Publish(ctx context.Context, b *model.Book, image *model.ImageUpload, authorIDs []uuid.UUID) (*model.Book, error) {
	// All validation runs before any side effect.
	authorIDs = dedupeIDs(authorIDs)
	if len(authorIDs) == 0 {
		return nil, model.ErrNoAuthorsSelected
	}

	b.Title = strings.TrimSpace(b.Title)
	if b.ISBN != nil {
		normalized, err := model.ValidateISBN(strings.TrimSpace(*b.ISBN))
		if err != nil {
			return nil, err
		}
		if normalized == "" {
			b.ISBN = nil
		} else {
			b.ISBN = &normalized
		}
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}

	if b.ISBN != nil {
		exists, err := s.repo.ISBNExists(ctx, *b.ISBN, b.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check isbn uniqueness: %w", err)
		}
		if exists {
			return nil, model.ErrISBNAlreadyExists
		}
	}

	isNew := b.IsNew()

	// Upload the new cover before the transaction. A failed upload aborts the
	// publish; the book is never saved without the requested image.
	if image != nil {
		name, err := s.storage.Upload(ctx, image.Data, image.Extension, image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrImageUploadFailed, err)
		}
		b.CoverImage = &name
	}

	saved, prevCover, err := s.repo.SaveWithAuthors(ctx, b, authorIDs)
	if err != nil {
		// The row was rolled back; try to reclaim the fresh upload. An
		// orphaned asset is acceptable, an orphaned reference is not.
		if image != nil && b.CoverImage != nil {
			if delErr := s.storage.Delete(ctx, *b.CoverImage); delErr != nil {
				log.Error().Err(delErr).Str("asset", *b.CoverImage).Msg("orphaned cover left in storage")
			}
		}
		return nil, err
	}

	// The replaced cover is removed only once the commit is durable. The
	// reference comes from the locked row, so a cover swapped in by a
	// concurrent update is reclaimed instead of the caller's stale read.
	if image != nil && prevCover != nil && (saved.CoverImage == nil || *prevCover != *saved.CoverImage) {
		if err := s.storage.Delete(ctx, *prevCover); err != nil {
			log.Error().Err(err).Str("asset", *prevCover).Msg("failed to delete replaced cover")
		}
	}

	// Subscribers hear about a book exactly once, on its first publication.
	if isNew {
		s.dispatcher.NotifySubscribers(ctx, saved)
	}

	return saved, nil
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Asset first, row second. If the row delete then fails, the asset is
	// gone for good; that rare inconsistency is logged and accepted rather
	// than blocking deletion on storage.
	if b.CoverImage != nil {
		if err := s.storage.Delete(ctx, *b.CoverImage); err != nil {
			log.Error().Err(err).Str("asset", *b.CoverImage).Msg("failed to delete cover asset")
		}
	}

	return s.repo.Delete(ctx, id)
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*model.BookResponse, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.toResponse(b), nil
}

func (s *bookService) List(ctx context.Context, year *int) ([]model.BookResponse, error) {
	books, err := s.repo.List(ctx, year)
	if err != nil {
		return nil, err
	}

	responses := make([]model.BookResponse, len(books))
	for i := range books {
		responses[i] = *s.toResponse(&books[i])
	}

	return responses, nil
}

func (s *bookService) toResponse(b *model.Book) *model.BookResponse {
	resp := &model.BookResponse{Book: *b}
	if b.CoverImage != nil {
		url := s.storage.PublicURL(*b.CoverImage)
		resp.CoverURL = &url
	}
	return resp
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
