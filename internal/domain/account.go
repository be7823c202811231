package domain

import "time"

// VerificationStatus tracks the email verification state of an account.
type VerificationStatus string

const (
	StatusNotVerified VerificationStatus = "not_verified"
	StatusVerified    VerificationStatus = "verified"
)

type Account struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string

	// VerificationToken is the signed token for the outstanding verification
	// cycle. It is retained after a successful confirm but becomes inert once
	// VerificationExpiry passes.
	VerificationToken  string
	VerificationExpiry time.Time
	VerificationStatus VerificationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a Account) Verified() bool {
	return a.VerificationStatus == StatusVerified
}

// ProfileImage is the single image attached to an account. The account_id
// column carries a uniqueness constraint, so at most one row exists per account.
type ProfileImage struct {
	ID         string
	AccountID  string
	ObjectKey  string
	URL        string
	UploadedAt time.Time
}
