package identity

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"go.uber.org/zap"
)

// CognitoBackend drives an AWS Cognito user pool configured for the
// CUSTOM_AUTH flow.
type CognitoBackend struct {
	client     *cognitoidentityprovider.Client
	userPoolID string
	clientID   string
	logger     *zap.Logger
}

func NewCognitoBackend(client *cognitoidentityprovider.Client, userPoolID, clientID string, logger *zap.Logger) *CognitoBackend {
	return &CognitoBackend{
		client:     client,
		userPoolID: userPoolID,
		clientID:   clientID,
		logger:     logger,
	}
}

// SignUp registers the user with a random throwaway password. The pool
// only ever authenticates through the custom flow, so the password is
// never used again.
func (b *CognitoBackend) SignUp(ctx context.Context, email, name string) (string, error) {
	password, err := throwawayPassword()
	if err != nil {
		return "", err
	}

	out, err := b.client.SignUp(ctx, &cognitoidentityprovider.SignUpInput{
		ClientId: aws.String(b.clientID),
		Username: aws.String(email),
		Password: aws.String(password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("name"), Value: aws.String(name)},
		},
	})
	if err != nil {
		var exists *types.UsernameExistsException
		if errors.As(err, &exists) {
			return "", fmt.Errorf("%w: %s", ErrUserAlreadyExists, email)
		}
		return "", fmt.Errorf("sign up %s: %w", email, err)
	}

	b.logger.Info("user signed up", zap.String("email", email))
	return aws.ToString(out.UserSub), nil
}

func (b *CognitoBackend) UserExists(ctx context.Context, email string) (bool, error) {
	out, err := b.client.ListUsers(ctx, &cognitoidentityprovider.ListUsersInput{
		UserPoolId: aws.String(b.userPoolID),
		Filter:     aws.String(fmt.Sprintf("email=%q", email)),
		Limit:      aws.Int32(1),
	})
	if err != nil {
		return false, fmt.Errorf("list users by email: %w", err)
	}
	return len(out.Users) > 0, nil
}

func (b *CognitoBackend) MarkEmailVerified(ctx context.Context, username string) error {
	_, err := b.client.AdminUpdateUserAttributes(ctx, &cognitoidentityprovider.AdminUpdateUserAttributesInput{
		UserPoolId: aws.String(b.userPoolID),
		Username:   aws.String(username),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email_verified"), Value: aws.String("true")},
		},
	})
	if err != nil {
		return fmt.Errorf("update email_verified for %s: %w", username, err)
	}
	return nil
}

// InitiateCustomAuth starts a CUSTOM_AUTH session for the user.
func (b *CognitoBackend) InitiateCustomAuth(ctx context.Context, email string) (ChallengeState, error) {
	out, err := b.client.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeCustomAuth,
		ClientId: aws.String(b.clientID),
		AuthParameters: map[string]string{
			"USERNAME": email,
		},
	})
	if err != nil {
		return ChallengeState{}, fmt.Errorf("initiate custom auth for %s: %w", email, err)
	}
	return ChallengeState{
		SessionID:  aws.ToString(out.Session),
		Parameters: out.ChallengeParameters,
	}, nil
}

// RespondToChallenge submits a challenge answer. A nil TokenResult with a
// non-empty next state means the provider wants another round.
func (b *CognitoBackend) RespondToChallenge(ctx context.Context, email string, state ChallengeState, answer string) (*TokenResult, ChallengeState, error) {
	out, err := b.client.RespondToAuthChallenge(ctx, &cognitoidentityprovider.RespondToAuthChallengeInput{
		ClientId:      aws.String(b.clientID),
		ChallengeName: types.ChallengeNameTypeCustomChallenge,
		Session:       aws.String(state.SessionID),
		ChallengeResponses: map[string]string{
			"USERNAME": email,
			"ANSWER":   answer,
		},
	})
	if err != nil {
		return nil, ChallengeState{}, fmt.Errorf("respond to challenge for %s: %w", email, err)
	}

	if out.AuthenticationResult != nil {
		res := &TokenResult{
			AccessToken:  aws.ToString(out.AuthenticationResult.AccessToken),
			RefreshToken: aws.ToString(out.AuthenticationResult.RefreshToken),
			IDToken:      aws.ToString(out.AuthenticationResult.IdToken),
			TokenType:    aws.ToString(out.AuthenticationResult.TokenType),
			ExpiresIn:    out.AuthenticationResult.ExpiresIn,
		}
		return res, ChallengeState{}, nil
	}

	next := ChallengeState{
		SessionID:  aws.ToString(out.Session),
		Parameters: out.ChallengeParameters,
	}
	return nil, next, nil
}

const passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func throwawayPassword() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate throwaway password: %w", err)
	}
	for i, b := range buf {
		buf[i] = passwordAlphabet[int(b)%len(passwordAlphabet)]
	}
	return string(buf), nil
}
