package memory

import (
	"context"
	"io"
	"sync"

	"github.com/webstack-labs/account-service/internal/application/account"
	"github.com/webstack-labs/account-service/internal/domain"
)

type ObjectStore struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// FailStore / FailDelete force the next call to fail; used to exercise
	// storage-failure paths in tests.
	FailStore  bool
	FailDelete bool
}

func NewObjectStore() *ObjectStore {
	return &ObjectStore{objects: make(map[string][]byte)}
}

func (s *ObjectStore) Store(ctx context.Context, key, contentType string, body io.Reader, size int64) (account.StoredObject, error) {
	if s.FailStore {
		return account.StoredObject{}, domain.ErrStorageUnavailable(nil)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return account.StoredObject{}, domain.ErrStorageUnavailable(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data

	return account.StoredObject{
		Key: key,
		URL: "mem://" + key,
	}, nil
}

func (s *ObjectStore) Delete(ctx context.Context, key string) error {
	if s.FailDelete {
		return domain.ErrStorageUnavailable(nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Has reports whether an object is stored; test helper.
func (s *ObjectStore) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok
}

// Len reports the number of stored objects; test helper.
func (s *ObjectStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
