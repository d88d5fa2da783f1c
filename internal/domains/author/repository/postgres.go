package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/author/model"
	"book-catalog/pkg/cache"
)

// postgresRepository uses pgxpool for PostgreSQL and Redis for read caching.
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
	authorCacheKeyPrefix = "author:"
	authorListCacheKey   = "authors:list"
	cacheTTL             = 15 * time.Minute
)

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (last_name, first_name, middle_name)
        VALUES ($1, $2, $3)
        RETURNING id, last_name, first_name, middle_name, created_at, updated_at
    `

	var created model.Author
	err := r.pool.QueryRow(ctx, query, a.LastName, a.FirstName, a.MiddleName).Scan(
		&created.ID,
		&created.LastName,
		&created.FirstName,
		&created.MiddleName,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	r.invalidateListCache(ctx)

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var a model.Author
	found, err := r.cache.Get(ctx, cacheKey, &a)
	if err == nil && found {
		return &a, nil
	}

	query := `
        SELECT id, last_name, first_name, middle_name, created_at, updated_at
        FROM authors
        WHERE id = $1
    `

	err = r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.LastName,
		&a.FirstName,
		&a.MiddleName,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, a, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("author cache set failed")
	}

	return &a, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]model.Author, error) {
	var authors []model.Author
	found, err := r.cache.Get(ctx, authorListCacheKey, &authors)
	if err == nil && found {
		return authors, nil
	}

	query := `
        SELECT id, last_name, first_name, middle_name, created_at, updated_at
        FROM authors
        ORDER BY last_name, first_name
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors = make([]model.Author, 0)
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.LastName, &a.FirstName, &a.MiddleName, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	if err := r.cache.Set(ctx, authorListCacheKey, authors, cacheTTL); err != nil {
		log.Warn().Err(err).Msg("author list cache set failed")
	}

	return authors, nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	if err := r.cache.Delete(ctx, authorListCacheKey); err != nil {
		log.Warn().Err(err).Msg("author list cache invalidation failed")
	}
}
