package repository

import (
	"context"

	"book-catalog/internal/domains/report/model"
)

// RepositoryInterface defines read-only aggregation queries for reports.
type RepositoryInterface interface {
	// TopAuthorsByYear returns up to limit authors ranked by number of
	// books published in the given year, most prolific first.
	TopAuthorsByYear(ctx context.Context, year, limit int) ([]model.AuthorRank, error)

	// AvailableYears returns every distinct publication year, newest first.
	AvailableYears(ctx context.Context) ([]int, error)
}
