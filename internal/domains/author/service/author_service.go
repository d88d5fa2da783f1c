package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"book-catalog/internal/domains/author/model"
	"book-catalog/internal/domains/author/repository"
)

type authorService struct {
	repo repository.RepositoryInterface
}

func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{repo: repo}
}

func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	req.LastName = strings.TrimSpace(req.LastName)
	req.FirstName = strings.TrimSpace(req.FirstName)
	if req.MiddleName != nil {
		trimmed := strings.TrimSpace(*req.MiddleName)
		if trimmed == "" {
			req.MiddleName = nil
		} else {
			req.MiddleName = &trimmed
		}
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	a := &model.Author{
		LastName:   req.LastName,
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
	}

	return s.repo.Create(ctx, a)
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	if id == uuid.Nil {
		return nil, model.ErrAuthorNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) GetAll(ctx context.Context) ([]model.Author, error) {
	return s.repo.GetAll(ctx)
}
