package account

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAccount() Account {
	now := time.Now().UTC().Truncate(time.Second)
	return Account{
		ID:           uuid.New(),
		FirstName:    "Ada",
		LastName:     "Lovelace",
		EmailAddress: "ada@example.com",
		PhoneNumber:  "+14155552671",
		CreatedAt:    now,
		ModifiedAt:   now,
	}
}

// The partition key must marshal as a string attribute so it matches the
// S-typed key used by Get.
func TestDynamoAccountIDMarshalsAsString(t *testing.T) {
	acct := sampleAccount()

	item, err := attributevalue.MarshalMap(toDynamoAccount(acct))
	require.NoError(t, err)

	key, ok := item["account_id"].(*ddbtypes.AttributeValueMemberS)
	require.True(t, ok, "account_id must be an S attribute, got %T", item["account_id"])
	assert.Equal(t, acct.ID.String(), key.Value)
}

func TestDynamoAccountRoundTrip(t *testing.T) {
	acct := sampleAccount()

	item, err := attributevalue.MarshalMap(toDynamoAccount(acct))
	require.NoError(t, err)

	var record dynamoAccount
	require.NoError(t, attributevalue.UnmarshalMap(item, &record))

	got, err := record.toAccount()
	require.NoError(t, err)
	assert.Equal(t, acct.ID, got.ID)
	assert.Equal(t, acct.EmailAddress, got.EmailAddress)
	assert.True(t, acct.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, acct.ModifiedAt.Equal(got.ModifiedAt))
}

func TestDynamoAccountMalformedID(t *testing.T) {
	record := dynamoAccount{ID: "not-a-uuid"}
	_, err := record.toAccount()
	assert.Error(t, err)
}
