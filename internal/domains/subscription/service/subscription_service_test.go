package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "book-catalog/internal/domains/author/model"
	"book-catalog/internal/domains/subscription/model"
)

type fakeSubscriptionRepo struct {
	rows        []*model.Subscription
	createCalls int

	// conflictWith simulates a concurrent insert winning the race: Create
	// fails with a duplicate error and the winning row becomes visible to
	// subsequent lookups.
	conflictWith *model.Subscription
}

func (f *fakeSubscriptionRepo) Create(_ context.Context, s *model.Subscription) (*model.Subscription, error) {
	f.createCalls++
	if f.conflictWith != nil {
		f.rows = append(f.rows, f.conflictWith)
		return nil, model.ErrDuplicateSubscription
	}

	created := *s
	created.ID = uuid.New()
	f.rows = append(f.rows, &created)
	return &created, nil
}

func (f *fakeSubscriptionRepo) FindByAuthorAndEmail(_ context.Context, authorID uuid.UUID, email string) (*model.Subscription, error) {
	for _, s := range f.rows {
		if s.AuthorID == authorID && s.Email != nil && *s.Email == email {
			return s, nil
		}
	}
	return nil, model.ErrSubscriptionNotFound
}

func (f *fakeSubscriptionRepo) FindByAuthorAndPhone(_ context.Context, authorID uuid.UUID, phone string) (*model.Subscription, error) {
	for _, s := range f.rows {
		if s.AuthorID == authorID && s.Phone != nil && *s.Phone == phone {
			return s, nil
		}
	}
	return nil, model.ErrSubscriptionNotFound
}

func (f *fakeSubscriptionRepo) FindByAuthorIDs(_ context.Context, _ []uuid.UUID) ([]model.SubscriptionWithAuthor, error) {
	return nil, nil
}

type fakeAuthorRepo struct {
	existing map[uuid.UUID]bool
}

func (f *fakeAuthorRepo) Create(_ context.Context, _ *authormodel.Author) (*authormodel.Author, error) {
	return nil, nil
}

func (f *fakeAuthorRepo) GetByID(_ context.Context, _ uuid.UUID) (*authormodel.Author, error) {
	return nil, authormodel.ErrAuthorNotFound
}

func (f *fakeAuthorRepo) GetAll(_ context.Context) ([]authormodel.Author, error) {
	return nil, nil
}

func (f *fakeAuthorRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	return f.existing[id], nil
}

func strPtr(s string) *string { return &s }

func setup() (ServiceInterface, *fakeSubscriptionRepo, uuid.UUID) {
	repo := &fakeSubscriptionRepo{}
	authorID := uuid.New()
	authors := &fakeAuthorRepo{existing: map[uuid.UUID]bool{authorID: true}}
	return NewSubscriptionService(repo, authors), repo, authorID
}

func TestSubscribe_RequiresContact(t *testing.T) {
	svc, repo, authorID := setup()

	tests := []struct {
		name  string
		email *string
		phone *string
	}{
		{"both nil", nil, nil},
		{"both empty", strPtr(""), strPtr("")},
		{"whitespace only", strPtr("   "), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Subscribe(context.Background(), &model.SubscribeRequest{
				AuthorID: authorID,
				Email:    tt.email,
				Phone:    tt.phone,
			})

			require.ErrorIs(t, err, model.ErrInvalidContact)
			assert.Zero(t, repo.createCalls)
		})
	}
}

func TestSubscribe_RejectsMalformedEmail(t *testing.T) {
	svc, repo, authorID := setup()

	_, err := svc.Subscribe(context.Background(), &model.SubscribeRequest{
		AuthorID: authorID,
		Email:    strPtr("not-an-email"),
	})

	require.ErrorIs(t, err, model.ErrInvalidEmail)
	assert.Zero(t, repo.createCalls)
}

func TestSubscribe_UnknownAuthor(t *testing.T) {
	svc, repo, _ := setup()

	_, err := svc.Subscribe(context.Background(), &model.SubscribeRequest{
		AuthorID: uuid.New(),
		Email:    strPtr("reader@example.com"),
	})

	require.ErrorIs(t, err, model.ErrAuthorNotFound)
	assert.Zero(t, repo.createCalls)
}

func TestSubscribe_IsIdempotent(t *testing.T) {
	svc, repo, authorID := setup()

	req := &model.SubscribeRequest{AuthorID: authorID, Email: strPtr("reader@example.com")}

	first, err := svc.Subscribe(context.Background(), req)
	require.NoError(t, err)

	second, err := svc.Subscribe(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.createCalls)
	assert.Len(t, repo.rows, 1)
}

func TestSubscribe_ByPhone(t *testing.T) {
	svc, repo, authorID := setup()

	req := &model.SubscribeRequest{AuthorID: authorID, Phone: strPtr("+79161234567")}

	first, err := svc.Subscribe(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, first.Phone)

	second, err := svc.Subscribe(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.rows, 1)
}

func TestSubscribe_KnownPhoneWithNewEmailReturnsExisting(t *testing.T) {
	svc, repo, authorID := setup()

	phone := "+79161234567"
	existing := &model.Subscription{ID: uuid.New(), AuthorID: authorID, Phone: &phone}
	repo.rows = append(repo.rows, existing)

	got, err := svc.Subscribe(context.Background(), &model.SubscribeRequest{
		AuthorID: authorID,
		Email:    strPtr("new-reader@example.com"),
		Phone:    &phone,
	})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)
	assert.Zero(t, repo.createCalls)
}

func TestSubscribe_RecoversFromUniqueViolationRace(t *testing.T) {
	svc, repo, authorID := setup()

	email := "reader@example.com"
	winner := &model.Subscription{ID: uuid.New(), AuthorID: authorID, Email: &email}
	repo.conflictWith = winner

	got, err := svc.Subscribe(context.Background(), &model.SubscribeRequest{
		AuthorID: authorID,
		Email:    &email,
	})

	require.NoError(t, err)
	assert.Equal(t, winner.ID, got.ID)
}

func TestSubscribe_RecoversFromPhoneCollisionRace(t *testing.T) {
	svc, repo, authorID := setup()

	// The winning subscription holds only the phone; the losing request
	// carries a fresh email plus the same phone, so the email refetch
	// misses and recovery has to fall back to the phone.
	phone := "+79161234567"
	winner := &model.Subscription{ID: uuid.New(), AuthorID: authorID, Phone: &phone}
	repo.conflictWith = winner

	got, err := svc.Subscribe(context.Background(), &model.SubscribeRequest{
		AuthorID: authorID,
		Email:    strPtr("new-reader@example.com"),
		Phone:    &phone,
	})

	require.NoError(t, err)
	assert.Equal(t, winner.ID, got.ID)
}
