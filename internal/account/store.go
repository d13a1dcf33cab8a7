package account

import (
	"context"
	"errors"
)

// ErrAccountNotFound is returned by Store.Get and Store.Update when no
// record exists for the id.
var ErrAccountNotFound = errors.New("account not found")

// Store is simple key-value persistence for account records, keyed by
// account id.
type Store interface {
	Put(ctx context.Context, acct Account) error
	Get(ctx context.Context, id string) (*Account, error)
	Update(ctx context.Context, acct Account) error
}
