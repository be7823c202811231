package memory

import (
	"context"
	"sync"

	"github.com/webstack-labs/account-service/internal/domain"
)

type ImageRepo struct {
	mu        sync.RWMutex
	byAccount map[string]domain.ProfileImage
}

func NewImageRepo() *ImageRepo {
	return &ImageRepo{
		byAccount: make(map[string]domain.ProfileImage),
	}
}

func (r *ImageRepo) GetByAccount(ctx context.Context, accountID string) (domain.ProfileImage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	img, ok := r.byAccount[accountID]
	if !ok {
		return domain.ProfileImage{}, domain.ErrImageNotFound()
	}
	return img, nil
}

func (r *ImageRepo) Create(ctx context.Context, img domain.ProfileImage) (domain.ProfileImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byAccount[img.AccountID]; exists {
		return domain.ProfileImage{}, domain.ErrImageAlreadyExists()
	}
	r.byAccount[img.AccountID] = img
	return img, nil
}

func (r *ImageRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for accountID, img := range r.byAccount {
		if img.ID == id {
			delete(r.byAccount, accountID)
			return nil
		}
	}
	return domain.ErrImageNotFound()
}
