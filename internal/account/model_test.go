package account

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateInput() CreateAccountInput {
	return CreateAccountInput{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		EmailAddress: "ada@example.com",
		PhoneNumber:  "+14155552671",
	}
}

func TestCreateInputValid(t *testing.T) {
	in := validCreateInput()
	require.NoError(t, in.Validate())
}

func TestCreateInputRejectsBadFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateAccountInput)
	}{
		{"missing first name", func(in *CreateAccountInput) { in.FirstName = "" }},
		{"whitespace first name", func(in *CreateAccountInput) { in.FirstName = "   " }},
		{"missing last name", func(in *CreateAccountInput) { in.LastName = "" }},
		{"bad email", func(in *CreateAccountInput) { in.EmailAddress = "not-an-email" }},
		{"email with display name", func(in *CreateAccountInput) { in.EmailAddress = "Ada <ada@example.com>" }},
		{"phone without country code", func(in *CreateAccountInput) { in.PhoneNumber = "4155552671" }},
		{"phone too short", func(in *CreateAccountInput) { in.PhoneNumber = "+1415" }},
		{"phone not a number", func(in *CreateAccountInput) { in.PhoneNumber = "+1abcdefghij" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCreateInput()
			tt.mutate(&in)
			assert.ErrorIs(t, in.Validate(), ErrValidation)
		})
	}
}

func TestCreateInputSanitizesNames(t *testing.T) {
	in := validCreateInput()
	in.FirstName = "  Ada "
	in.LastName = "<b>Lovelace</b>"
	require.NoError(t, in.Validate())
	assert.Equal(t, "Ada", in.FirstName)
	assert.NotContains(t, in.LastName, "<")
}

func TestUpdateInputRequiresID(t *testing.T) {
	in := UpdateAccountInput{}
	assert.ErrorIs(t, in.Validate(), ErrValidation)
}

func TestUpdateInputValidatesSetFieldsOnly(t *testing.T) {
	bad := "nope"
	in := UpdateAccountInput{ID: uuid.New(), EmailAddress: &bad}
	assert.ErrorIs(t, in.Validate(), ErrValidation)

	in = UpdateAccountInput{ID: uuid.New()}
	assert.NoError(t, in.Validate())
}

func TestUpdateApplyRefreshesModifiedAt(t *testing.T) {
	acct := Account{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace"}
	first := "Augusta"
	in := UpdateAccountInput{ID: acct.ID, FirstName: &first}

	in.Apply(&acct)
	assert.Equal(t, "Augusta", acct.FirstName)
	assert.Equal(t, "Lovelace", acct.LastName)
	assert.False(t, acct.ModifiedAt.IsZero())
}
