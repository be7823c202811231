package account

import (
	"context"

	"github.com/webstack-labs/account-service/internal/domain"
)

type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Password  *string
}

func (u ProfileUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Password == nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

// UpdateProfile applies the given fields; a new password is hashed here so
// the repository only ever sees the hash.
func (s *Service) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (domain.Account, error) {
	changes := ProfileChanges{
		FirstName: upd.FirstName,
		LastName:  upd.LastName,
	}

	if upd.Password != nil {
		hash, err := s.hasher.Hash(*upd.Password)
		if err != nil {
			return domain.Account{}, domain.ErrHashFailed(err)
		}
		changes.PasswordHash = &hash
	}

	return s.accounts.UpdateProfile(ctx, id, changes)
}
