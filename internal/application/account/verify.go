package account

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/webstack-labs/account-service/internal/domain"
)

// Confirm runs the verification checks in order:
//
//  1. account lookup by email
//  2. exact match against the stored token
//  3. stored expiry window (authoritative, independent of the token's own)
//  4. token signature / embedded expiry
//  5. token claims email == account email
//
// The signature is validated even when the stored-token match already
// succeeded; a matching but tampered token is still rejected. A failed
// confirm mutates nothing. Confirming an already-verified account with a
// still-valid token succeeds without a state change.
func (s *Service) Confirm(ctx context.Context, email, token string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return domain.ErrMissingField("email")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrMissingField("token")
	}

	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, "account_not_found") {
			return domain.ErrVerifyUnknownAccount()
		}
		return err
	}

	if a.VerificationToken == "" ||
		subtle.ConstantTimeCompare([]byte(a.VerificationToken), []byte(token)) != 1 {
		return domain.ErrTokenMismatch()
	}

	if time.Now().After(a.VerificationExpiry) {
		return domain.ErrTokenExpired()
	}

	claims, err := s.signer.Validate(token)
	if err != nil {
		return err
	}

	if !strings.EqualFold(claims.Email, a.Email) {
		return domain.ErrTokenMismatch()
	}

	if a.Verified() {
		return nil
	}

	return s.accounts.SetVerified(ctx, a.ID)
}
