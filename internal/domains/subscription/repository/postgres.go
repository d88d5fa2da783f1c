package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"book-catalog/internal/domains/subscription/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, s *model.Subscription) (*model.Subscription, error) {
	query := `
        INSERT INTO subscriptions (author_id, email, phone)
        VALUES ($1, $2, $3)
        RETURNING id, author_id, email, phone, created_at
    `

	var created model.Subscription
	err := r.pool.QueryRow(ctx, query, s.AuthorID, s.Email, s.Phone).Scan(
		&created.ID,
		&created.AuthorID,
		&created.Email,
		&created.Phone,
		&created.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return nil, model.ErrDuplicateSubscription
			case "23503": // foreign_key_violation
				return nil, model.ErrAuthorNotFound
			}
		}
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) FindByAuthorAndEmail(ctx context.Context, authorID uuid.UUID, email string) (*model.Subscription, error) {
	return r.findOne(ctx,
		`SELECT id, author_id, email, phone, created_at FROM subscriptions WHERE author_id = $1 AND email = $2`,
		authorID, email,
	)
}

func (r *postgresRepository) FindByAuthorAndPhone(ctx context.Context, authorID uuid.UUID, phone string) (*model.Subscription, error) {
	return r.findOne(ctx,
		`SELECT id, author_id, email, phone, created_at FROM subscriptions WHERE author_id = $1 AND phone = $2`,
		authorID, phone,
	)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, args ...interface{}) (*model.Subscription, error) {
	var s model.Subscription
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&s.ID,
		&s.AuthorID,
		&s.Email,
		&s.Phone,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}

	return &s, nil
}

func (r *postgresRepository) FindByAuthorIDs(ctx context.Context, authorIDs []uuid.UUID) ([]model.SubscriptionWithAuthor, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}

	query := `
        SELECT s.id, s.author_id, s.email, s.phone, s.created_at,
               a.id, a.last_name, a.first_name, a.middle_name, a.created_at, a.updated_at
        FROM subscriptions s
        JOIN authors a ON a.id = s.author_id
        WHERE s.author_id = ANY($1)
    `

	rows, err := r.pool.Query(ctx, query, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	defer rows.Close()

	subs := make([]model.SubscriptionWithAuthor, 0)
	for rows.Next() {
		var s model.SubscriptionWithAuthor
		err := rows.Scan(
			&s.ID, &s.AuthorID, &s.Email, &s.Phone, &s.CreatedAt,
			&s.Author.ID, &s.Author.LastName, &s.Author.FirstName, &s.Author.MiddleName,
			&s.Author.CreatedAt, &s.Author.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, s)
	}

	return subs, rows.Err()
}
