package model

import (
	"time"

	"github.com/google/uuid"

	authormodel "book-catalog/internal/domains/author/model"
)

// Subscription is one party's request to hear about new books by one author.
// Exactly one contact channel must be populated at creation; rows are never
// mutated afterwards.
type Subscription struct {
	ID        uuid.UUID `json:"id" db:"id"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	Email     *string   `json:"email" db:"email"`
	Phone     *string   `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SubscriptionWithAuthor carries the subscribed author alongside, for
// building notification messages without extra lookups.
type SubscriptionWithAuthor struct {
	Subscription
	Author authormodel.Author `json:"author"`
}

// SubscribeRequest is the payload for the subscribe operation.
type SubscribeRequest struct {
	AuthorID uuid.UUID `json:"author_id"`
	Email    *string   `json:"email"`
	Phone    *string   `json:"phone"`
}
