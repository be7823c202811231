package account

import (
	"context"
	"io"
	"time"

	"github.com/webstack-labs/account-service/internal/domain"
)

/*
AccountRepo
-----------
Persistence port for accounts.
Only describes WHAT the account service needs, not HOW it's stored.
*/
type AccountRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	GetByID(ctx context.Context, id string) (domain.Account, error)
	Create(ctx context.Context, a domain.Account) (domain.Account, error)

	// UpdateProfile applies the non-nil fields and refreshes updated_at.
	UpdateProfile(ctx context.Context, id string, changes ProfileChanges) (domain.Account, error)
	SetVerified(ctx context.Context, id string) error
}

// ProfileChanges carries the updatable columns; nil means leave unchanged.
type ProfileChanges struct {
	FirstName    *string
	LastName     *string
	PasswordHash *string
}

func (c ProfileChanges) Empty() bool {
	return c.FirstName == nil && c.LastName == nil && c.PasswordHash == nil
}

/*
ImageRepo
---------
At most one image record per account; Create must fail with
domain.ErrImageAlreadyExists when a record exists.
*/
type ImageRepo interface {
	GetByAccount(ctx context.Context, accountID string) (domain.ProfileImage, error)
	Create(ctx context.Context, img domain.ProfileImage) (domain.ProfileImage, error)
	Delete(ctx context.Context, id string) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and validates verification tokens (JWT).
The signed token embeds its own nominal expiry; the service stores a separate,
shorter authoritative window on the account row.
*/
type TokenClaims struct {
	Email     string
	FirstName string
	Exp       time.Time
}

type TokenSigner interface {
	Sign(email, firstName string, ttl time.Duration) (string, error)
	Validate(token string) (TokenClaims, error)
}

/*
ObjectStore
-----------
Binary storage for profile images (S3 or in-memory for tests).
*/
type StoredObject struct {
	Key string
	URL string
}

type ObjectStore interface {
	Store(ctx context.Context, key, contentType string, body io.Reader, size int64) (StoredObject, error)
	Delete(ctx context.Context, key string) error
}

/*
Notifier
--------
Fire-and-forget hand-off of registration events. Implementations must never
block the caller; losses are logged, not surfaced.
*/
type AccountCreatedEvent struct {
	AccountID string
	Email     string
	FirstName string
	Token     string
}

type Notifier interface {
	AccountCreated(evt AccountCreatedEvent)
}

/*
EventPublisher
--------------
Publishes events to the broker. The notify dispatcher drains its queue
through this port; email delivery happens downstream.
*/
type EventPublisher interface {
	PublishAccountCreated(ctx context.Context, evt AccountCreatedEvent) error
}
