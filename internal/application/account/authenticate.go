package account

import (
	"context"
	"strings"

	"github.com/webstack-labs/account-service/internal/domain"
)

// Authenticate checks Basic credentials against the store.
// The verification check runs BEFORE the password compare: an unverified
// account is refused with 403 whether or not the password is right.
// Unknown account and wrong password are indistinguishable (both 401).
func (s *Service) Authenticate(ctx context.Context, email, password string) (domain.Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return domain.Account{}, domain.ErrInvalidCredentials()
	}

	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, domain.ErrInvalidCredentials()
	}

	if !a.Verified() {
		return domain.Account{}, domain.ErrAccountNotVerified()
	}

	if err := s.hasher.Compare(a.PasswordHash, password); err != nil {
		return domain.Account{}, domain.ErrInvalidCredentials()
	}

	return a, nil
}
