package account

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"passwordless-auth/internal/identity"
)

type memStore struct {
	mu       sync.Mutex
	accounts map[string]Account
}

func newMemStore() *memStore {
	return &memStore{accounts: make(map[string]Account)}
}

func (m *memStore) Put(ctx context.Context, acct Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[acct.ID.String()] = acct
	return nil
}

func (m *memStore) Get(ctx context.Context, id string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return &acct, nil
}

func (m *memStore) Update(ctx context.Context, acct Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[acct.ID.String()]; !ok {
		return ErrAccountNotFound
	}
	m.accounts[acct.ID.String()] = acct
	return nil
}

type fakeBackend struct {
	subjects map[string]string // email -> subject id
	signUps  int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{subjects: make(map[string]string)}
}

func (f *fakeBackend) SignUp(ctx context.Context, email, name string) (string, error) {
	if _, ok := f.subjects[email]; ok {
		return "", identity.ErrUserAlreadyExists
	}
	sub := uuid.NewString()
	f.subjects[email] = sub
	f.signUps++
	return sub, nil
}

func (f *fakeBackend) UserExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.subjects[email]
	return ok, nil
}

func (f *fakeBackend) MarkEmailVerified(ctx context.Context, username string) error {
	return nil
}

func newTestService() (*Service, *memStore, *fakeBackend) {
	store := newMemStore()
	backend := newFakeBackend()
	return NewService(store, backend, nil, zap.NewNop()), store, backend
}

func TestCreateRegistersAndPersists(t *testing.T) {
	svc, store, backend := newTestService()

	acct, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, backend.subjects["ada@example.com"], acct.ID.String())
	assert.False(t, acct.CreatedAt.IsZero())

	stored, err := store.Get(context.Background(), acct.ID.String())
	require.NoError(t, err)
	assert.Equal(t, *acct, *stored)
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc, store, _ := newTestService()

	_, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validCreateInput())
	assert.ErrorIs(t, err, identity.ErrUserAlreadyExists)
	assert.Len(t, store.accounts, 1)
}

func TestCreateValidationFailureSkipsBackend(t *testing.T) {
	svc, _, backend := newTestService()

	in := validCreateInput()
	in.EmailAddress = "broken"
	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, backend.signUps)
}

func TestGetUnknownAccount(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestGetRejectsMalformedID(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateExistingAccount(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	phone := "+442071838750"
	updated, err := svc.Update(context.Background(), UpdateAccountInput{
		ID:          created.ID,
		PhoneNumber: &phone,
	})
	require.NoError(t, err)

	assert.Equal(t, phone, updated.PhoneNumber)
	assert.Equal(t, created.FirstName, updated.FirstName)
	assert.True(t, updated.ModifiedAt.After(created.ModifiedAt) || updated.ModifiedAt.Equal(created.ModifiedAt))
}

func TestUpdateMissingAccount(t *testing.T) {
	svc, _, _ := newTestService()

	first := "Ada"
	_, err := svc.Update(context.Background(), UpdateAccountInput{
		ID:        uuid.New(),
		FirstName: &first,
	})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
