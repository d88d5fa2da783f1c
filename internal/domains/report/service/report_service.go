package service

import (
	"context"
	"fmt"
	"time"

	"book-catalog/internal/domains/report/model"
	"book-catalog/internal/domains/report/repository"
)

const (
	minYear       = 1000
	maxYear       = 9999
	topAuthorsCap = 10
)

type reportService struct {
	repo repository.RepositoryInterface
	now  func() time.Time
}

func NewReportService(repo repository.RepositoryInterface) ServiceInterface {
	return &reportService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *reportService) TopAuthors(ctx context.Context, year int) (*model.TopAuthorsReport, error) {
	if year < minYear || year > maxYear {
		year = s.now().Year()
	}

	authors, err := s.repo.TopAuthorsByYear(ctx, year, topAuthorsCap)
	if err != nil {
		return nil, fmt.Errorf("failed to build top authors report: %w", err)
	}

	years, err := s.repo.AvailableYears(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load available years: %w", err)
	}

	return &model.TopAuthorsReport{
		Year:           year,
		Authors:        authors,
		AvailableYears: years,
	}, nil
}
