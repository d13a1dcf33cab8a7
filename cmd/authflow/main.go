// Command authflow drives the hosted custom-authentication flow end to
// end from a terminal: it registers the user if needed, starts a
// CUSTOM_AUTH session, and answers challenges with codes typed by the
// user until tokens are issued.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"passwordless-auth/internal/client"
	"passwordless-auth/internal/config"
	"passwordless-auth/internal/identity"
	"passwordless-auth/internal/util"
)

func main() {
	cfg := config.LoadConfig()
	logger := util.Init(cfg.Environment, "warn", "console")

	ctx := context.Background()
	awsCfg, err := client.LoadAWSConfig(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	backend := identity.NewCognitoBackend(
		client.NewCognitoClient(awsCfg),
		cfg.Cognito.UserPoolID,
		cfg.Cognito.ClientID,
		logger,
	)

	in := bufio.NewReader(os.Stdin)
	email := prompt(in, "Please input email: ")
	name := prompt(in, "Please enter your name: ")

	exists, err := backend.UserExists(ctx, email)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if exists {
		fmt.Printf("User %s exists\n", email)
	} else {
		fmt.Printf("User %s does not exist, creating a new one\n", email)
		if _, err := backend.SignUp(ctx, email, name); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	}

	state, err := backend.InitiateCustomAuth(ctx, email)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Printf("An authentication code has been sent to %s, please enter it here.\n", email)

	for {
		answer := prompt(in, "Enter one-time 6-digit code: ")
		tokens, next, err := backend.RespondToChallenge(ctx, email, state, answer)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		if tokens != nil {
			fmt.Println("Authentication succeeded!")
			fmt.Printf("  token type:    %s\n", tokens.TokenType)
			fmt.Printf("  expires in:    %ds\n", tokens.ExpiresIn)
			fmt.Printf("  id token:      %s\n", tokens.IDToken)
			fmt.Printf("  access token:  %s\n", tokens.AccessToken)
			fmt.Printf("  refresh token: %s\n", tokens.RefreshToken)
			return
		}
		if next.SessionID == "" {
			fmt.Fprintln(os.Stderr, "Authentication failed: retry limit reached")
			os.Exit(1)
		}
		fmt.Println("Incorrect code, try again.")
		state = next
	}
}

func prompt(in *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}
