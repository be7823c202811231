package account

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/webstack-labs/account-service/internal/domain"
)

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates an unverified account and hands the verification event to
// the notifier. Notification problems never fail or block registration.
func (s *Service) Register(ctx context.Context, in RegisterInput) (domain.Account, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return domain.Account{}, domain.ErrMissingField("email")
	}
	if in.Password == "" {
		return domain.Account{}, domain.ErrMissingField("password")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.Account{}, domain.ErrHashFailed(err)
	}

	token, err := s.signer.Sign(email, in.FirstName, s.tokenTTL)
	if err != nil {
		return domain.Account{}, domain.ErrTokenSignFailed(err)
	}

	now := time.Now().UTC()
	a := domain.Account{
		ID:                 uuid.NewString(),
		Email:              email,
		PasswordHash:       hash,
		FirstName:          strings.TrimSpace(in.FirstName),
		LastName:           strings.TrimSpace(in.LastName),
		VerificationToken:  token,
		VerificationExpiry: now.Add(s.verifyWindow),
		VerificationStatus: domain.StatusNotVerified,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := s.accounts.Create(ctx, a)
	if err != nil {
		return domain.Account{}, err
	}

	if s.notifier != nil {
		s.notifier.AccountCreated(AccountCreatedEvent{
			AccountID: created.ID,
			Email:     created.Email,
			FirstName: created.FirstName,
			Token:     created.VerificationToken,
		})
	}

	return created, nil
}
