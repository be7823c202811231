package account

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/webstack-labs/account-service/internal/domain"
)

// AttachImage stores the object first, then persists the record. If the
// record insert fails the object is left behind in storage (accepted orphan);
// the account_id uniqueness constraint still guarantees at most one record.
func (s *Service) AttachImage(ctx context.Context, accountID, filename, contentType string, body io.Reader, size int64) (domain.ProfileImage, error) {
	if _, err := s.images.GetByAccount(ctx, accountID); err == nil {
		return domain.ProfileImage{}, domain.ErrImageAlreadyExists()
	} else if !domain.Is(err, "image_not_found") {
		return domain.ProfileImage{}, err
	}

	key := uuid.NewString() + "-" + filename
	obj, err := s.store.Store(ctx, key, contentType, body, size)
	if err != nil {
		return domain.ProfileImage{}, err
	}

	img := domain.ProfileImage{
		ID:         uuid.NewString(),
		AccountID:  accountID,
		ObjectKey:  obj.Key,
		URL:        obj.URL,
		UploadedAt: time.Now().UTC(),
	}

	return s.images.Create(ctx, img)
}

func (s *Service) GetImage(ctx context.Context, accountID string) (domain.ProfileImage, error) {
	return s.images.GetByAccount(ctx, accountID)
}

// RemoveImage deletes the stored object first; if that fails the record is
// kept so a retry can find it. Only a confirmed object delete removes the row.
func (s *Service) RemoveImage(ctx context.Context, accountID string) error {
	img, err := s.images.GetByAccount(ctx, accountID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, img.ObjectKey); err != nil {
		return err
	}

	return s.images.Delete(ctx, img.ID)
}
