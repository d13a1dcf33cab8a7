package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"passwordless-auth/internal/client"
)

const accountKeyPrefix = "account:"

// RedisStore keeps account records as JSON values keyed by account id.
// Records have no TTL; accounts live until deleted.
type RedisStore struct {
	client *client.RedisClient
}

func NewRedisStore(c *client.RedisClient) *RedisStore {
	return &RedisStore{client: c}
}

func (s *RedisStore) Put(ctx context.Context, acct Account) error {
	payload, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("marshal account %s: %w", acct.ID, err)
	}
	if err := s.client.Set(ctx, accountKeyPrefix+acct.ID.String(), string(payload), 0); err != nil {
		return fmt.Errorf("store account %s: %w", acct.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Account, error) {
	payload, err := s.client.Get(ctx, accountKeyPrefix+id)
	if err != nil {
		if errors.Is(err, client.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
		}
		return nil, fmt.Errorf("load account %s: %w", id, err)
	}

	var acct Account
	if err := json.Unmarshal([]byte(payload), &acct); err != nil {
		return nil, fmt.Errorf("unmarshal account %s: %w", id, err)
	}
	return &acct, nil
}

func (s *RedisStore) Update(ctx context.Context, acct Account) error {
	if _, err := s.Get(ctx, acct.ID.String()); err != nil {
		return err
	}
	return s.Put(ctx, acct)
}
