package service

import (
	"context"

	"book-catalog/internal/domains/report/model"
)

type ServiceInterface interface {
	// TopAuthors builds the top-authors report for a year. A year outside
	// the supported 1000-9999 range falls back to the current year.
	TopAuthors(ctx context.Context, year int) (*model.TopAuthorsReport, error)
}
