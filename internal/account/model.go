// Package account implements the peripheral account CRUD surface: field
// validation, key-value persistence, and registration with the identity
// backend.
package account

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"

	"passwordless-auth/internal/util"
)

// ErrValidation marks malformed client input. Handlers map it to an
// unprocessable-entity response with no state change.
var ErrValidation = errors.New("invalid request parameters")

// Account is the stored record for one registered user.
type Account struct {
	ID           uuid.UUID `json:"account_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	EmailAddress string    `json:"email_address"`
	PhoneNumber  string    `json:"phone_number"`
	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `json:"modified_at"`
}

// CreateAccountInput is the request body for creating an account.
type CreateAccountInput struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	EmailAddress string `json:"email_address"`
	PhoneNumber  string `json:"phone_number"`
}

func (in *CreateAccountInput) Validate() error {
	in.FirstName = util.SanitizeInput(in.FirstName)
	in.LastName = util.SanitizeInput(in.LastName)

	if in.FirstName == "" {
		return fmt.Errorf("%w: first_name is required", ErrValidation)
	}
	if in.LastName == "" {
		return fmt.Errorf("%w: last_name is required", ErrValidation)
	}
	if err := validateEmail(in.EmailAddress); err != nil {
		return err
	}
	return validatePhoneNumber(in.PhoneNumber)
}

// UpdateAccountInput is the request body for a partial account update.
// Nil fields are left unchanged.
type UpdateAccountInput struct {
	ID           uuid.UUID `json:"account_id"`
	FirstName    *string   `json:"first_name,omitempty"`
	LastName     *string   `json:"last_name,omitempty"`
	EmailAddress *string   `json:"email_address,omitempty"`
	PhoneNumber  *string   `json:"phone_number,omitempty"`
}

func (in *UpdateAccountInput) Validate() error {
	if in.ID == uuid.Nil {
		return fmt.Errorf("%w: account_id is required", ErrValidation)
	}
	if in.FirstName != nil {
		*in.FirstName = util.SanitizeInput(*in.FirstName)
		if *in.FirstName == "" {
			return fmt.Errorf("%w: first_name must not be empty", ErrValidation)
		}
	}
	if in.LastName != nil {
		*in.LastName = util.SanitizeInput(*in.LastName)
		if *in.LastName == "" {
			return fmt.Errorf("%w: last_name must not be empty", ErrValidation)
		}
	}
	if in.EmailAddress != nil {
		if err := validateEmail(*in.EmailAddress); err != nil {
			return err
		}
	}
	if in.PhoneNumber != nil {
		if err := validatePhoneNumber(*in.PhoneNumber); err != nil {
			return err
		}
	}
	return nil
}

// Apply copies the set fields onto the account and refreshes ModifiedAt.
func (in *UpdateAccountInput) Apply(acct *Account) {
	if in.FirstName != nil {
		acct.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		acct.LastName = *in.LastName
	}
	if in.EmailAddress != nil {
		acct.EmailAddress = *in.EmailAddress
	}
	if in.PhoneNumber != nil {
		acct.PhoneNumber = *in.PhoneNumber
	}
	acct.ModifiedAt = time.Now().UTC()
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email address %q", ErrValidation, email)
	}
	return nil
}

// validatePhoneNumber expects E.164 input, matching the original contract
// where numbers carry their own country code.
func validatePhoneNumber(number string) error {
	parsed, err := phonenumbers.Parse(number, "")
	if err != nil {
		return fmt.Errorf("%w: invalid phone number %q", ErrValidation, number)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return fmt.Errorf("%w: invalid phone number %q", ErrValidation, number)
	}
	return nil
}
