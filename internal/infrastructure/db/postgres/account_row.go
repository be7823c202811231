package postgres

import (
	"database/sql"
	"time"

	"github.com/webstack-labs/account-service/internal/domain"
)

type accountRow struct {
	ID                 string
	Email              string
	PasswordHash       string
	FirstName          string
	LastName           string
	VerificationToken  sql.NullString
	VerificationExpiry sql.NullTime
	VerificationStatus string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func toDomainAccount(ar accountRow) domain.Account {
	a := domain.Account{
		ID:                 ar.ID,
		Email:              ar.Email,
		PasswordHash:       ar.PasswordHash,
		FirstName:          ar.FirstName,
		LastName:           ar.LastName,
		VerificationStatus: domain.VerificationStatus(ar.VerificationStatus),
		CreatedAt:          ar.CreatedAt,
		UpdatedAt:          ar.UpdatedAt,
	}
	if ar.VerificationToken.Valid {
		a.VerificationToken = ar.VerificationToken.String
	}
	if ar.VerificationExpiry.Valid {
		a.VerificationExpiry = ar.VerificationExpiry.Time
	}
	return a
}
