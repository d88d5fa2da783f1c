package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/book/model"
	"book-catalog/pkg/cache"
	"book-catalog/pkg/database"
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
	bookCacheKeyPrefix = "book:"
	bookListPattern    = "books:*"
	cacheTTL           = 15 * time.Minute
)

type saveResult struct {
	book      *model.Book
	prevCover *string
}

func (r *postgresRepository) SaveWithAuthors(ctx context.Context, b *model.Book, authorIDs []uuid.UUID) (*model.Book, *string, error) {
	saved, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*saveResult, error) {
		var result saveResult
		var err error

		if b.IsNew() {
			result.book, err = insertBook(ctx, tx, b)
		} else {
			result.book, result.prevCover, err = updateBook(ctx, tx, b)
		}
		if err != nil {
			return nil, err
		}

		if err := replaceAuthorLinks(ctx, tx, result.book.ID, authorIDs); err != nil {
			return nil, err
		}

		result.book.AuthorIDs = authorIDs
		return &result, nil
	})
	if err != nil {
		return nil, nil, mapConstraintError(err)
	}

	r.invalidateCache(ctx, saved.book.ID)

	return saved.book, saved.prevCover, nil
}

func insertBook(ctx context.Context, tx pgx.Tx, b *model.Book) (*model.Book, error) {
	query := `
        INSERT INTO books (title, year, description, isbn, cover_image)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, title, year, description, isbn, cover_image, created_at, updated_at
    `

	var created model.Book
	err := tx.QueryRow(ctx, query, b.Title, b.Year, b.Description, b.ISBN, b.CoverImage).Scan(
		&created.ID,
		&created.Title,
		&created.Year,
		&created.Description,
		&created.ISBN,
		&created.CoverImage,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert book: %w", err)
	}

	return &created, nil
}

func updateBook(ctx context.Context, tx pgx.Tx, b *model.Book) (*model.Book, *string, error) {
	// Lock the row so concurrent publishes of the same book serialize on it;
	// the link replacement below runs under the same lock. The cover read
	// here is authoritative: a reference read before the transaction may
	// already have been replaced by a concurrent update.
	var prevCover *string
	err := tx.QueryRow(ctx, `SELECT cover_image FROM books WHERE id = $1 FOR UPDATE`, b.ID).Scan(&prevCover)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, model.ErrBookNotFound
		}
		return nil, nil, fmt.Errorf("failed to lock book row: %w", err)
	}

	query := `
        UPDATE books
        SET title = $2, year = $3, description = $4, isbn = $5, cover_image = $6, updated_at = now()
        WHERE id = $1
        RETURNING id, title, year, description, isbn, cover_image, created_at, updated_at
    `

	var updated model.Book
	err = tx.QueryRow(ctx, query, b.ID, b.Title, b.Year, b.Description, b.ISBN, b.CoverImage).Scan(
		&updated.ID,
		&updated.Title,
		&updated.Year,
		&updated.Description,
		&updated.ISBN,
		&updated.CoverImage,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update book: %w", err)
	}

	return &updated, prevCover, nil
}

// replaceAuthorLinks swaps out the complete link set. No incremental
// add/remove exists, which keeps stored links in lockstep with the caller's
// selection.
func replaceAuthorLinks(ctx context.Context, tx pgx.Tx, bookID uuid.UUID, authorIDs []uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM book_author WHERE book_id = $1`, bookID); err != nil {
		return fmt.Errorf("failed to clear author links: %w", err)
	}

	for _, authorID := range authorIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO book_author (book_id, author_id) VALUES ($1, $2)`,
			bookID, authorID,
		)
		if err != nil {
			return fmt.Errorf("failed to link author %s: %w", authorID, err)
		}
	}

	return nil
}

// mapConstraintError translates postgres constraint violations into domain
// errors.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if pgErr.ConstraintName == "books_isbn_key" {
				return model.ErrISBNAlreadyExists
			}
		case "23503": // foreign_key_violation
			if pgErr.TableName == "book_author" {
				return model.ErrAuthorNotFound
			}
		}
	}
	return err
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	cacheKey := bookCacheKeyPrefix + id.String()

	var b model.Book
	found, err := r.cache.Get(ctx, cacheKey, &b)
	if err == nil && found {
		return &b, nil
	}

	query := `
        SELECT id, title, year, description, isbn, cover_image, created_at, updated_at
        FROM books
        WHERE id = $1
    `

	err = r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.Title,
		&b.Year,
		&b.Description,
		&b.ISBN,
		&b.CoverImage,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	b.AuthorIDs, err = r.getAuthorIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, cacheKey, b, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("book cache set failed")
	}

	return &b, nil
}

func (r *postgresRepository) getAuthorIDs(ctx context.Context, bookID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT author_id FROM book_author WHERE book_id = $1`, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to load author links: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan author link: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *postgresRepository) List(ctx context.Context, year *int) ([]model.Book, error) {
	cacheKey := "books:all"
	if year != nil {
		cacheKey = fmt.Sprintf("books:year:%d", *year)
	}

	var cached []model.Book
	found, err := r.cache.Get(ctx, cacheKey, &cached)
	if err == nil && found {
		return cached, nil
	}

	query := `
        SELECT id, title, year, description, isbn, cover_image, created_at, updated_at
        FROM books
    `
	args := []interface{}{}

	if year != nil {
		query += ` WHERE year = $1`
		args = append(args, *year)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		var b model.Book
		err := rows.Scan(&b.ID, &b.Title, &b.Year, &b.Description, &b.ISBN, &b.CoverImage, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, books, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("book list cache set failed")
	}

	return books, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete book: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrBookNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.invalidateCache(ctx, id)

	return nil
}

func (r *postgresRepository) ISBNExists(ctx context.Context, isbn string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM books WHERE isbn = $1 AND id <> $2)`,
		isbn, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check isbn: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) invalidateCache(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, bookCacheKeyPrefix+id.String()); err != nil {
		log.Warn().Err(err).Msg("book cache invalidation failed")
	}
	if err := r.cache.DeletePattern(ctx, bookListPattern); err != nil {
		log.Warn().Err(err).Msg("book list cache invalidation failed")
	}
}
