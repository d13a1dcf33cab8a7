// Package identity abstracts the hosted identity provider that registers
// users, runs the custom-authentication session loop, and issues tokens.
// The service only drives the provider's protocol; token cryptography and
// session storage live entirely on the provider side.
package identity

import (
	"context"
	"errors"
)

// ErrUserAlreadyExists is returned by SignUp when the identifier is taken.
var ErrUserAlreadyExists = errors.New("user already exists")

// Backend is the administrative surface of the identity provider.
type Backend interface {
	// SignUp registers a user and returns the provider's subject id.
	SignUp(ctx context.Context, email, name string) (string, error)
	// UserExists reports whether a user with the given email is registered.
	UserExists(ctx context.Context, email string) (bool, error)
	// MarkEmailVerified sets the user's email_verified attribute.
	MarkEmailVerified(ctx context.Context, username string) error
}

// TokenResult is the token material issued when a login succeeds.
type TokenResult struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	TokenType    string
	ExpiresIn    int32
}

// ChallengeState identifies an in-flight custom-authentication session.
type ChallengeState struct {
	SessionID  string
	Parameters map[string]string
}
