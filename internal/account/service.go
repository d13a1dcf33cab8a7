package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"passwordless-auth/internal/events"
	"passwordless-auth/internal/identity"
)

// Service ties account persistence to identity-backend registration.
type Service struct {
	store   Store
	backend identity.Backend
	events  *events.Publisher
	logger  *zap.Logger
}

func NewService(store Store, backend identity.Backend, publisher *events.Publisher, logger *zap.Logger) *Service {
	return &Service{
		store:   store,
		backend: backend,
		events:  publisher,
		logger:  logger,
	}
}

// Create registers the user with the identity backend and persists the
// account record under the backend's subject id. Registration failures
// leave no partial record behind.
func (s *Service) Create(ctx context.Context, in CreateAccountInput) (*Account, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s %s", in.FirstName, in.LastName)
	sub, err := s.backend.SignUp(ctx, in.EmailAddress, name)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		// Subject ids are uuids for every backend we drive, but a backend
		// is free to use another scheme.
		s.logger.Warn("identity backend returned non-uuid subject, minting id",
			zap.String("subject", sub))
		id = uuid.New()
	}

	now := time.Now().UTC()
	acct := Account{
		ID:           id,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		EmailAddress: in.EmailAddress,
		PhoneNumber:  in.PhoneNumber,
		CreatedAt:    now,
		ModifiedAt:   now,
	}
	if err := s.store.Put(ctx, acct); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, events.TypeAccountCreated, acct.ID.String(), map[string]string{
		"email": acct.EmailAddress,
	})
	s.logger.Info("account created", zap.String("account_id", acct.ID.String()))
	return &acct, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Account, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: malformed account id %q", ErrValidation, id)
	}
	return s.store.Get(ctx, id)
}

// Update applies a partial update to an existing account. Missing
// accounts are an error; nothing is upserted.
func (s *Service) Update(ctx context.Context, in UpdateAccountInput) (*Account, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	acct, err := s.store.Get(ctx, in.ID.String())
	if err != nil {
		return nil, err
	}

	in.Apply(acct)
	if err := s.store.Update(ctx, *acct); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, events.TypeAccountUpdated, acct.ID.String(), nil)
	s.logger.Info("account updated", zap.String("account_id", acct.ID.String()))
	return acct, nil
}
