package account

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/webstack-labs/account-service/internal/domain"
)

/*
Fakes for ports
*/

type fakeAccountRepo struct {
	mu sync.Mutex

	byID    map[string]domain.Account
	byEmail map[string]domain.Account

	// injected errors (if set, method returns error)
	getByEmailErr  error
	getByIDErr     error
	createErr      error
	updateErr      error
	setVerifiedErr error

	verifiedIDs []string
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		byID:    map[string]domain.Account{},
		byEmail: map[string]domain.Account{},
	}
}

func (f *fakeAccountRepo) put(a domain.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[a.ID] = a
	f.byEmail[a.Email] = a
}

func (f *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.Account{}, f.getByEmailErr
	}
	a, ok := f.byEmail[email]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	return a, nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.Account{}, f.getByIDErr
	}
	a, ok := f.byID[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	return a, nil
}

func (f *fakeAccountRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.Account{}, f.createErr
	}
	if _, exists := f.byEmail[a.Email]; exists {
		return domain.Account{}, domain.ErrEmailAlreadyExists()
	}
	f.byID[a.ID] = a
	f.byEmail[a.Email] = a
	return a, nil
}

func (f *fakeAccountRepo) UpdateProfile(ctx context.Context, id string, changes ProfileChanges) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return domain.Account{}, f.updateErr
	}
	a, ok := f.byID[id]
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
	f.byID[id] = a
	f.byEmail[a.Email] = a
	return a, nil
}

func (f *fakeAccountRepo) SetVerified(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setVerifiedErr != nil {
		return f.setVerifiedErr
	}
	a, ok := f.byID[id]
	if !ok {
		return domain.ErrAccountNotFound()
	}
	a.VerificationStatus = domain.StatusVerified
	f.byID[id] = a
	f.byEmail[a.Email] = a
	f.verifiedIDs = append(f.verifiedIDs, id)
	return nil
}

type fakeImageRepo struct {
	mu sync.Mutex

	byAccount map[string]domain.ProfileImage

	createErr error
	deleteErr error

	deletedIDs []string
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{byAccount: map[string]domain.ProfileImage{}}
}

func (f *fakeImageRepo) GetByAccount(ctx context.Context, accountID string) (domain.ProfileImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	img, ok := f.byAccount[accountID]
	if !ok {
		return domain.ProfileImage{}, domain.ErrImageNotFound()
	}
	return img, nil
}

func (f *fakeImageRepo) Create(ctx context.Context, img domain.ProfileImage) (domain.ProfileImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.ProfileImage{}, f.createErr
	}
	if _, exists := f.byAccount[img.AccountID]; exists {
		return domain.ProfileImage{}, domain.ErrImageAlreadyExists()
	}
	f.byAccount[img.AccountID] = img
	return img, nil
}

func (f *fakeImageRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return f.deleteErr
	}
	for accountID, img := range f.byAccount {
		if img.ID == id {
			delete(f.byAccount, accountID)
			f.deletedIDs = append(f.deletedIDs, id)
			return nil
		}
	}
	return domain.ErrImageNotFound()
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashFn != nil {
		return h.hashFn(password)
	}
	return "hash:" + password, nil
}

func (h *fakeHasher) Compare(hash string, password string) error {
	if h.compareFn != nil {
		return h.compareFn(hash, password)
	}
	if hash == "hash:"+password {
		return nil
	}
	return errors.New("mismatch")
}

// fakeSigner issues transparent tokens "tok(email)" and treats anything else
// as a bad signature.
type fakeSigner struct {
	signFn     func(email, firstName string, ttl time.Duration) (string, error)
	validateFn func(token string) (TokenClaims, error)
}

func signedTokenFor(email string) string { return fmt.Sprintf("tok(%s)", email) }

func (s *fakeSigner) Sign(email, firstName string, ttl time.Duration) (string, error) {
	if s.signFn != nil {
		return s.signFn(email, firstName, ttl)
	}
	return signedTokenFor(email), nil
}

func (s *fakeSigner) Validate(token string) (TokenClaims, error) {
	if s.validateFn != nil {
		return s.validateFn(token)
	}
	if !strings.HasPrefix(token, "tok(") || !strings.HasSuffix(token, ")") {
		return TokenClaims{}, domain.ErrTokenInvalid(nil)
	}
	email := token[len("tok(") : len(token)-1]
	return TokenClaims{Email: email, Exp: time.Now().Add(time.Hour)}, nil
}

type fakeStore struct {
	mu sync.Mutex

	objects map[string][]byte

	storeErr  error
	deleteErr error

	deletedKeys []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) Store(ctx context.Context, key, contentType string, body io.Reader, size int64) (StoredObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.storeErr != nil {
		return StoredObject{}, s.storeErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return StoredObject{}, err
	}
	s.objects[key] = data
	return StoredObject{Key: key, URL: "fake://" + key}, nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, key)
	s.deletedKeys = append(s.deletedKeys, key)
	return nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	evts []AccountCreatedEvent
}

func (n *fakeNotifier) AccountCreated(evt AccountCreatedEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.evts = append(n.evts, evt)
}

func (n *fakeNotifier) events() []AccountCreatedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]AccountCreatedEvent(nil), n.evts...)
}

/*
Service factory for tests
*/

func newSvcForTest(t *testing.T) (*Service, *fakeAccountRepo, *fakeImageRepo, *fakeHasher, *fakeSigner, *fakeStore, *fakeNotifier) {
	t.Helper()

	accounts := newFakeAccountRepo()
	images := newFakeImageRepo()
	hasher := &fakeHasher{}
	signer := &fakeSigner{}
	store := newFakeStore()
	notifier := &fakeNotifier{}

	svc := NewService(accounts, images, hasher, signer, store, notifier, Config{
		TokenTTL:     time.Hour,
		VerifyWindow: 2 * time.Minute,
	})
	if svc == nil {
		t.Fatalf("svc is nil")
	}

	return svc, accounts, images, hasher, signer, store, notifier
}

/*
Small assertions
*/

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code=%q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code=%q, got err=%v", code, err)
	}
}
