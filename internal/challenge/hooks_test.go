package challenge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAdmin struct {
	calls    int
	username string
	err      error
}

func (f *fakeAdmin) MarkEmailVerified(ctx context.Context, username string) error {
	f.calls++
	f.username = username
	return f.err
}

func TestPreSignUpAlwaysConfirms(t *testing.T) {
	h := NewHooks(&fakeAdmin{}, zap.NewNop())
	assert.True(t, h.PreSignUp(context.Background(), User{Username: "alice"}))
	assert.True(t, h.PreSignUp(context.Background(), User{}))
}

func TestPostAuthenticationVerifiesEmailOnce(t *testing.T) {
	admin := &fakeAdmin{}
	h := NewHooks(admin, zap.NewNop())
	user := User{Username: "alice", Email: "alice@example.com"}

	require.NoError(t, h.PostAuthentication(context.Background(), user))
	assert.Equal(t, 1, admin.calls)
	assert.Equal(t, "alice", admin.username)

	// Once the backend reports the flag set, later logins are no-ops.
	user.EmailVerified = true
	require.NoError(t, h.PostAuthentication(context.Background(), user))
	assert.Equal(t, 1, admin.calls)
}

func TestPostAuthenticationPropagatesBackendError(t *testing.T) {
	backendErr := errors.New("backend unavailable")
	h := NewHooks(&fakeAdmin{err: backendErr}, zap.NewNop())

	err := h.PostAuthentication(context.Background(), User{Username: "alice"})
	assert.ErrorIs(t, err, backendErr)
}
