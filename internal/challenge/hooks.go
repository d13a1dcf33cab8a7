package challenge

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Admin is the slice of the identity backend the lifecycle hooks need.
type Admin interface {
	MarkEmailVerified(ctx context.Context, username string) error
}

// User is the identity-backend view of a user as seen by the hooks.
type User struct {
	Username      string
	Email         string
	EmailVerified bool
}

// Hooks implements the pre-sign-up and post-authentication steps that
// bracket the challenge loop.
type Hooks struct {
	admin  Admin
	logger *zap.Logger
}

func NewHooks(admin Admin, logger *zap.Logger) *Hooks {
	return &Hooks{admin: admin, logger: logger}
}

// PreSignUp always confirms the new user. Only a confirmed user may enter
// the custom flow, and the one-time code itself proves ownership of the
// contact method, so the usual confirmation email gate is redundant.
func (h *Hooks) PreSignUp(ctx context.Context, user User) bool {
	h.logger.Info("auto-confirming new user", zap.String("username", user.Username))
	return true
}

// PostAuthentication marks the user's email verified after a successful
// login. A no-op when the flag is already set.
func (h *Hooks) PostAuthentication(ctx context.Context, user User) error {
	if user.EmailVerified {
		h.logger.Debug("email already verified", zap.String("username", user.Username))
		return nil
	}
	if err := h.admin.MarkEmailVerified(ctx, user.Username); err != nil {
		return fmt.Errorf("mark email verified for %s: %w", user.Username, err)
	}
	h.logger.Info("email marked verified", zap.String("username", user.Username))
	return nil
}
