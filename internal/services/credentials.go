package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier decides whether a login attempt may proceed. It never
// touches the session store.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) error
}

// AcceptAnyPassword is the demo login contract: there is no credential
// store, so any non-empty password signs the user in. Swap in a real
// verifier before putting this in front of actual accounts.
type AcceptAnyPassword struct{}

func (AcceptAnyPassword) Verify(ctx context.Context, email, password string) error {
	if password == "" {
		return &UnauthorizedError{Message: "Invalid email or password"}
	}
	return nil
}

// DemoPassword is shared by every seeded demo account.
const DemoPassword = "demo123"

// DemoEmails are the accounts advertised on the login page.
var DemoEmails = []string{
	"ahmed.hassan@student.cuet.ac.bd",
	"fatima.rahman@student.cuet.ac.bd",
	"mohammad.ali@student.cuet.ac.bd",
	"sarah.khan@student.cuet.ac.bd",
}

// DemoAccounts checks logins against a fixed set of bcrypt-hashed accounts.
type DemoAccounts struct {
	hashes map[string][]byte
}

// NewDemoAccounts hashes the given email/password pairs. Emails are matched
// case-insensitively.
func NewDemoAccounts(accounts map[string]string, cost int) (*DemoAccounts, error) {
	d := &DemoAccounts{hashes: make(map[string][]byte, len(accounts))}
	for email, password := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", email, err)
		}
		d.hashes[strings.ToLower(email)] = hash
	}
	return d, nil
}

// NewDefaultDemoAccounts seeds DemoEmails with DemoPassword.
func NewDefaultDemoAccounts() (*DemoAccounts, error) {
	accounts := make(map[string]string, len(DemoEmails))
	for _, email := range DemoEmails {
		accounts[email] = DemoPassword
	}
	return NewDemoAccounts(accounts, bcrypt.DefaultCost)
}

func (d *DemoAccounts) Verify(ctx context.Context, email, password string) error {
	hash, ok := d.hashes[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return &UnauthorizedError{Message: "Invalid email or password"}
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return &UnauthorizedError{Message: "Invalid email or password"}
	}
	return nil
}
