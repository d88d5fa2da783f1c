package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/book/model"
	subscriptionmodel "book-catalog/internal/domains/subscription/model"
)

// newBookTemplate is the SMS body sent to subscribers; %s placeholders are
// the book title and the author's full name.
const newBookTemplate = `Новая книга "%s" автора %s уже в каталоге!`

// SubscriptionFinder loads subscriptions joined with their authors.
type SubscriptionFinder interface {
	FindByAuthorIDs(ctx context.Context, authorIDs []uuid.UUID) ([]subscriptionmodel.SubscriptionWithAuthor, error)
}

// Channel delivers a single message to a single recipient.
type Channel interface {
	Send(ctx context.Context, recipient, message string) error
}

// Dispatcher fans a new-book announcement out to everyone subscribed to
// any of the book's authors. Delivery is best effort: individual send
// failures are logged and never interrupt the rest of the fanout.
type Dispatcher struct {
	subscriptions SubscriptionFinder
	channel       Channel
}

func NewDispatcher(subscriptions SubscriptionFinder, channel Channel) *Dispatcher {
	return &Dispatcher{
		subscriptions: subscriptions,
		channel:       channel,
	}
}

// NotifySubscribers sends one SMS per distinct phone number subscribed to
// the book's authors. A subscriber following several of the book's authors
// receives a single message.
func (d *Dispatcher) NotifySubscribers(ctx context.Context, book *model.Book) {
	if len(book.AuthorIDs) == 0 {
		return
	}

	subs, err := d.subscriptions.FindByAuthorIDs(ctx, book.AuthorIDs)
	if err != nil {
		log.Error().Err(err).Str("book_id", book.ID.String()).Msg("failed to load subscribers")
		return
	}

	sent := 0
	seen := make(map[string]struct{})
	for _, sub := range subs {
		if sub.Phone == nil || *sub.Phone == "" {
			continue
		}
		if _, ok := seen[*sub.Phone]; ok {
			continue
		}
		seen[*sub.Phone] = struct{}{}

		message := fmt.Sprintf(newBookTemplate, book.Title, sub.Author.FullName())
		if err := d.channel.Send(ctx, *sub.Phone, message); err != nil {
			log.Error().
				Err(err).
				Str("phone", *sub.Phone).
				Str("book_id", book.ID.String()).
				Msg("failed to deliver notification")
			continue
		}
		sent++
	}

	log.Info().
		Str("book_id", book.ID.String()).
		Int("subscribers", len(subs)).
		Int("sent", sent).
		Msg("new book notifications dispatched")
}
