package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/webstack-labs/account-service/internal/domain"
)

type ImageRepo struct {
	db *sql.DB
}

func NewImageRepo(db *sql.DB) *ImageRepo {
	return &ImageRepo{db: db}
}

const imageCols = `id, account_id, object_key, url, uploaded_at`

// ---------- account.ImageRepo ----------

func (r *ImageRepo) GetByAccount(ctx context.Context, accountID string) (domain.ProfileImage, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return domain.ProfileImage{}, domain.ErrMissingField("account_id")
	}

	const q = `
SELECT ` + imageCols + `
FROM profile_images
WHERE account_id = $1
LIMIT 1;
`
	var img domain.ProfileImage
	err := r.db.QueryRowContext(ctx, q, accountID).Scan(
		&img.ID,
		&img.AccountID,
		&img.ObjectKey,
		&img.URL,
		&img.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ProfileImage{}, domain.ErrImageNotFound()
		}
		return domain.ProfileImage{}, domain.ErrDBUnavailable(err)
	}
	return img, nil
}

func (r *ImageRepo) Create(ctx context.Context, img domain.ProfileImage) (domain.ProfileImage, error) {
	if img.ID == "" {
		return domain.ProfileImage{}, domain.ErrMissingField("id")
	}
	if img.AccountID == "" {
		return domain.ProfileImage{}, domain.ErrMissingField("account_id")
	}
	if img.ObjectKey == "" {
		return domain.ProfileImage{}, domain.ErrMissingField("object_key")
	}

	const q = `
INSERT INTO profile_images (id, account_id, object_key, url, uploaded_at)
VALUES ($1,$2,$3,$4,$5)
RETURNING ` + imageCols + `;
`
	var out domain.ProfileImage
	err := r.db.QueryRowContext(ctx, q,
		img.ID, img.AccountID, img.ObjectKey, img.URL, img.UploadedAt,
	).Scan(
		&out.ID,
		&out.AccountID,
		&out.ObjectKey,
		&out.URL,
		&out.UploadedAt,
	)
	if err != nil {
		// the unique constraint on account_id closes the check-then-insert race
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return domain.ProfileImage{}, domain.ErrImageAlreadyExists()
		}
		return domain.ProfileImage{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *ImageRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrMissingField("id")
	}

	const q = `DELETE FROM profile_images WHERE id = $1;`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrImageNotFound()
	}
	return nil
}
