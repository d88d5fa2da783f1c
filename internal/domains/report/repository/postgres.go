package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/report/model"
	"book-catalog/pkg/cache"
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	topAuthorsCacheKeyPrefix = "report:top-authors:"
	yearsCacheKey            = "report:years"
	reportCacheTTL           = 5 * time.Minute
)

func (r *postgresRepository) TopAuthorsByYear(ctx context.Context, year, limit int) ([]model.AuthorRank, error) {
	cacheKey := fmt.Sprintf("%s%d:%d", topAuthorsCacheKeyPrefix, year, limit)
	var cached []model.AuthorRank
	if hit, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	query := `
        SELECT a.id, a.last_name, a.first_name, a.middle_name, COUNT(b.id) AS book_count
        FROM authors a
        JOIN book_author ba ON ba.author_id = a.id
        JOIN books b ON b.id = ba.book_id
        WHERE b.year = $1
        GROUP BY a.id, a.last_name, a.first_name, a.middle_name
        ORDER BY book_count DESC, a.last_name, a.first_name
        LIMIT $2
    `

	rows, err := r.pool.Query(ctx, query, year, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top authors: %w", err)
	}
	defer rows.Close()

	ranks := make([]model.AuthorRank, 0)
	for rows.Next() {
		var rank model.AuthorRank
		err := rows.Scan(&rank.AuthorID, &rank.LastName, &rank.FirstName, &rank.MiddleName, &rank.BookCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan top authors: %w", err)
		}
		ranks = append(ranks, rank)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read top authors: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, ranks, reportCacheTTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache top authors report")
	}

	return ranks, nil
}

func (r *postgresRepository) AvailableYears(ctx context.Context) ([]int, error) {
	var cached []int
	if hit, err := r.cache.Get(ctx, yearsCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT DISTINCT year FROM books ORDER BY year DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query publication years: %w", err)
	}
	defer rows.Close()

	years := make([]int, 0)
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("failed to scan publication years: %w", err)
		}
		years = append(years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read publication years: %w", err)
	}

	if err := r.cache.Set(ctx, yearsCacheKey, years, reportCacheTTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache publication years")
	}

	return years, nil
}
