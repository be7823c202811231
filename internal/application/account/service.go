package account

import "time"

type Service struct {
	accounts AccountRepo
	images   ImageRepo
	hasher   PasswordHasher
	signer   TokenSigner
	store    ObjectStore
	notifier Notifier

	tokenTTL     time.Duration // embedded in the signed token
	verifyWindow time.Duration // authoritative stored expiry
}

type Config struct {
	TokenTTL     time.Duration
	VerifyWindow time.Duration
}

func NewService(
	accounts AccountRepo,
	images ImageRepo,
	hasher PasswordHasher,
	signer TokenSigner,
	store ObjectStore,
	notifier Notifier,
	cfg Config,
) *Service {
	tokenTTL := cfg.TokenTTL
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	window := cfg.VerifyWindow
	if window <= 0 {
		window = 2 * time.Minute
	}
	return &Service{
		accounts: accounts,
		images:   images,
		hasher:   hasher,
		signer:   signer,
		store:    store,
		notifier: notifier,

		tokenTTL:     tokenTTL,
		verifyWindow: window,
	}
}
