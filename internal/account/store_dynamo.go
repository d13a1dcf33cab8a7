package account

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// DynamoStore keeps account records in a DynamoDB table with account_id
// as the partition key.
type DynamoStore struct {
	client    *dynamodb.Client
	tableName string
}

// dynamoAccount is the table shape of an account. The id is stored as its
// canonical string so the partition key is an S attribute; marshaling the
// uuid.UUID byte array directly would key the item as Binary.
type dynamoAccount struct {
	ID           string    `dynamodbav:"account_id"`
	FirstName    string    `dynamodbav:"first_name"`
	LastName     string    `dynamodbav:"last_name"`
	EmailAddress string    `dynamodbav:"email_address"`
	PhoneNumber  string    `dynamodbav:"phone_number"`
	CreatedAt    time.Time `dynamodbav:"created_at"`
	ModifiedAt   time.Time `dynamodbav:"modified_at"`
}

func toDynamoAccount(acct Account) dynamoAccount {
	return dynamoAccount{
		ID:           acct.ID.String(),
		FirstName:    acct.FirstName,
		LastName:     acct.LastName,
		EmailAddress: acct.EmailAddress,
		PhoneNumber:  acct.PhoneNumber,
		CreatedAt:    acct.CreatedAt,
		ModifiedAt:   acct.ModifiedAt,
	}
}

func (r dynamoAccount) toAccount() (*Account, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("malformed account_id %q: %w", r.ID, err)
	}
	return &Account{
		ID:           id,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		EmailAddress: r.EmailAddress,
		PhoneNumber:  r.PhoneNumber,
		CreatedAt:    r.CreatedAt,
		ModifiedAt:   r.ModifiedAt,
	}, nil
}

func NewDynamoStore(client *dynamodb.Client, tableName string) *DynamoStore {
	return &DynamoStore{client: client, tableName: tableName}
}

func (s *DynamoStore) Put(ctx context.Context, acct Account) error {
	item, err := attributevalue.MarshalMap(toDynamoAccount(acct))
	if err != nil {
		return fmt.Errorf("marshal account %s: %w", acct.ID, err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("store account %s: %w", acct.ID, err)
	}
	return nil
}

func (s *DynamoStore) Get(ctx context.Context, id string) (*Account, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]ddbtypes.AttributeValue{
			"account_id": &ddbtypes.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("load account %s: %w", id, err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}

	var record dynamoAccount
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return nil, fmt.Errorf("unmarshal account %s: %w", id, err)
	}
	return record.toAccount()
}

func (s *DynamoStore) Update(ctx context.Context, acct Account) error {
	if _, err := s.Get(ctx, acct.ID.String()); err != nil {
		return err
	}
	return s.Put(ctx, acct)
}
