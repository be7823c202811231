package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/webstack-labs/account-service/internal/application/account"
	"github.com/webstack-labs/account-service/internal/domain"
)

type AccountRepo struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// ---------- helpers ----------

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

const accountCols = `id, email, password_hash, first_name, last_name,
       verification_token, verification_expiry, verification_status,
       created_at, updated_at`

func scanAccountRow(row *sql.Row) (accountRow, error) {
	var ar accountRow
	err := row.Scan(
		&ar.ID,
		&ar.Email,
		&ar.PasswordHash,
		&ar.FirstName,
		&ar.LastName,
		&ar.VerificationToken,
		&ar.VerificationExpiry,
		&ar.VerificationStatus,
		&ar.CreatedAt,
		&ar.UpdatedAt,
	)
	return ar, err
}

// ---------- account.AccountRepo ----------

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.Account{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT ` + accountCols + `
FROM accounts
WHERE email = $1
LIMIT 1;
`
	ar, err := scanAccountRow(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound()
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return toDomainAccount(ar), nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id string) (domain.Account, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Account{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT ` + accountCols + `
FROM accounts
WHERE id = $1
LIMIT 1;
`
	ar, err := scanAccountRow(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound()
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return toDomainAccount(ar), nil
}

func (r *AccountRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	a.Email = normalizeEmail(a.Email)
	if a.ID == "" {
		return domain.Account{}, domain.ErrMissingField("id")
	}
	if a.Email == "" {
		return domain.Account{}, domain.ErrMissingField("email")
	}
	if a.PasswordHash == "" {
		return domain.Account{}, domain.ErrMissingField("password_hash")
	}
	if a.VerificationStatus == "" {
		a.VerificationStatus = domain.StatusNotVerified
	}

	const q = `
INSERT INTO accounts (id, email, password_hash, first_name, last_name,
                      verification_token, verification_expiry, verification_status)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING ` + accountCols + `;
`
	ar, err := scanAccountRow(r.db.QueryRowContext(ctx, q,
		a.ID, a.Email, a.PasswordHash, a.FirstName, a.LastName,
		a.VerificationToken, a.VerificationExpiry, string(a.VerificationStatus),
	))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return domain.Account{}, domain.ErrEmailAlreadyExists()
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return toDomainAccount(ar), nil
}

func (r *AccountRepo) UpdateProfile(ctx context.Context, id string, changes account.ProfileChanges) (domain.Account, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Account{}, domain.ErrMissingField("id")
	}

	const q = `
UPDATE accounts
SET first_name    = COALESCE($2, first_name),
    last_name     = COALESCE($3, last_name),
    password_hash = COALESCE($4, password_hash),
    updated_at    = NOW()
WHERE id = $1
RETURNING ` + accountCols + `;
`
	ar, err := scanAccountRow(r.db.QueryRowContext(ctx, q,
		id, changes.FirstName, changes.LastName, changes.PasswordHash,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound()
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return toDomainAccount(ar), nil
}

func (r *AccountRepo) SetVerified(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrMissingField("id")
	}

	const q = `
UPDATE accounts
SET verification_status = 'verified',
    updated_at = NOW()
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrAccountNotFound()
	}
	return nil
}
