package memory

import (
	"context"
	"sync"
	"time"

	"github.com/webstack-labs/account-service/internal/application/account"
	"github.com/webstack-labs/account-service/internal/domain"
)

type AccountRepo struct {
	mu      sync.RWMutex
	byID    map[string]domain.Account
	byEmail map[string]string // email -> accountID
}

func NewAccountRepo() *AccountRepo {
	return &AccountRepo{
		byID:    make(map[string]domain.Account),
		byEmail: make(map[string]string),
	}
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	return r.byID[id], nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	return a, nil
}

func (r *AccountRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[a.Email]; exists {
		return domain.Account{}, domain.ErrEmailAlreadyExists()
	}

	// ID should already be set by service/handler; but be defensive.
	if a.ID == "" {
		return domain.Account{}, domain.ErrInternal(nil)
	}

	r.byID[a.ID] = a
	r.byEmail[a.Email] = a.ID
	return a, nil
}

func (r *AccountRepo) UpdateProfile(ctx context.Context, id string, changes account.ProfileChanges) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	if changes.FirstName != nil {
		a.FirstName = *changes.FirstName
	}
	if changes.LastName != nil {
		a.LastName = *changes.LastName
	}
	if changes.PasswordHash != nil {
		a.PasswordHash = *changes.PasswordHash
	}
	a.UpdatedAt = time.Now().UTC()
	r.byID[id] = a
	return a, nil
}

func (r *AccountRepo) SetVerified(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAccountNotFound()
	}
	a.VerificationStatus = domain.StatusVerified
	a.UpdatedAt = time.Now().UTC()
	r.byID[id] = a
	return nil
}

// Put replaces an account wholesale; test helper for crafting states the
// public flows can't reach (expired windows, foreign tokens).
func (r *AccountRepo) Put(a domain.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[a.ID] = a
	r.byEmail[a.Email] = a.ID
}
