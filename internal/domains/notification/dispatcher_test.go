package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "book-catalog/internal/domains/author/model"
	bookmodel "book-catalog/internal/domains/book/model"
	subscriptionmodel "book-catalog/internal/domains/subscription/model"
)

type fakeFinder struct {
	subs    []subscriptionmodel.SubscriptionWithAuthor
	err     error
	gotIDs  []uuid.UUID
	queried int
}

func (f *fakeFinder) FindByAuthorIDs(_ context.Context, ids []uuid.UUID) ([]subscriptionmodel.SubscriptionWithAuthor, error) {
	f.queried++
	f.gotIDs = ids
	return f.subs, f.err
}

type fakeChannel struct {
	sent     []string
	messages []string
	failFor  map[string]error
}

func (f *fakeChannel) Send(_ context.Context, recipient, message string) error {
	if err, ok := f.failFor[recipient]; ok {
		return err
	}
	f.sent = append(f.sent, recipient)
	f.messages = append(f.messages, message)
	return nil
}

func subWithAuthor(authorID uuid.UUID, lastName string, phone *string) subscriptionmodel.SubscriptionWithAuthor {
	email := "reader@example.com"
	return subscriptionmodel.SubscriptionWithAuthor{
		Subscription: subscriptionmodel.Subscription{
			ID:       uuid.New(),
			AuthorID: authorID,
			Email:    &email,
			Phone:    phone,
		},
		Author: authormodel.Author{ID: authorID, LastName: lastName, FirstName: "Иван"},
	}
}

func strPtr(s string) *string { return &s }

func newBook(authorIDs ...uuid.UUID) *bookmodel.Book {
	return &bookmodel.Book{
		ID:        uuid.New(),
		Title:     "Мёртвые души",
		Year:      1842,
		AuthorIDs: authorIDs,
	}
}

func TestNotifySubscribers_SendsToPhoneSubscribers(t *testing.T) {
	authorID := uuid.New()
	finder := &fakeFinder{subs: []subscriptionmodel.SubscriptionWithAuthor{
		subWithAuthor(authorID, "Гоголь", strPtr("+79160000001")),
		subWithAuthor(authorID, "Гоголь", strPtr("+79160000002")),
	}}
	channel := &fakeChannel{}

	NewDispatcher(finder, channel).NotifySubscribers(context.Background(), newBook(authorID))

	require.Len(t, channel.sent, 2)
	assert.Equal(t, []string{"+79160000001", "+79160000002"}, channel.sent)
	assert.Equal(t, `Новая книга "Мёртвые души" автора Гоголь Иван уже в каталоге!`, channel.messages[0])
}

func TestNotifySubscribers_SkipsEmailOnlySubscribers(t *testing.T) {
	authorID := uuid.New()
	finder := &fakeFinder{subs: []subscriptionmodel.SubscriptionWithAuthor{
		subWithAuthor(authorID, "Гоголь", nil),
		subWithAuthor(authorID, "Гоголь", strPtr("")),
		subWithAuthor(authorID, "Гоголь", strPtr("+79160000001")),
	}}
	channel := &fakeChannel{}

	NewDispatcher(finder, channel).NotifySubscribers(context.Background(), newBook(authorID))

	assert.Equal(t, []string{"+79160000001"}, channel.sent)
}

func TestNotifySubscribers_DeduplicatesByPhone(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	// One reader subscribed to both co-authors with the same phone.
	finder := &fakeFinder{subs: []subscriptionmodel.SubscriptionWithAuthor{
		subWithAuthor(first, "Ильф", strPtr("+79160000001")),
		subWithAuthor(second, "Петров", strPtr("+79160000001")),
	}}
	channel := &fakeChannel{}

	NewDispatcher(finder, channel).NotifySubscribers(context.Background(), newBook(first, second))

	assert.Equal(t, []string{"+79160000001"}, channel.sent)
}

func TestNotifySubscribers_SendFailureDoesNotStopFanout(t *testing.T) {
	authorID := uuid.New()
	finder := &fakeFinder{subs: []subscriptionmodel.SubscriptionWithAuthor{
		subWithAuthor(authorID, "Гоголь", strPtr("+79160000001")),
		subWithAuthor(authorID, "Гоголь", strPtr("+79160000002")),
		subWithAuthor(authorID, "Гоголь", strPtr("+79160000003")),
	}}
	channel := &fakeChannel{failFor: map[string]error{
		"+79160000002": errors.New("gateway timeout"),
	}}

	NewDispatcher(finder, channel).NotifySubscribers(context.Background(), newBook(authorID))

	assert.Equal(t, []string{"+79160000001", "+79160000003"}, channel.sent)
}

func TestNotifySubscribers_NoAuthorsSkipsLookup(t *testing.T) {
	finder := &fakeFinder{}
	channel := &fakeChannel{}

	NewDispatcher(finder, channel).NotifySubscribers(context.Background(), newBook())

	assert.Zero(t, finder.queried)
	assert.Empty(t, channel.sent)
}

func TestNotifySubscribers_FinderFailureIsSwallowed(t *testing.T) {
	finder := &fakeFinder{err: errors.New("connection refused")}
	channel := &fakeChannel{}

	NewDispatcher(finder, channel).NotifySubscribers(context.Background(), newBook(uuid.New()))

	assert.Empty(t, channel.sent)
}
