package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/SscSPs/expense_tracker/internal/utils"
)

const defaultTokenTTL = 30 * 24 * time.Hour

// issueToken implements `expense_tracker token`: it prints a bearer token
// signed with JWT_SECRET for clients of an auth-enabled server.
func issueToken(args []string, secret string, stdout io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	subject := fs.String("subject", "owner", "Subject (sub claim) of the token")
	ttl := fs.Duration("ttl", defaultTokenTTL, "How long the token stays valid")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if secret == "" {
		return errors.New("JWT_SECRET must be set to issue tokens")
	}
	if *ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", *ttl)
	}

	token, err := utils.IssueToken(*subject, secret, *ttl)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	fmt.Fprintln(stdout, token)
	return nil
}
