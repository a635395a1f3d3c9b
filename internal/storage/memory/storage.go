package memory

import (
	"context"
	"sync"

	"github.com/mcoot/planetgame/internal/model"
	"github.com/mcoot/planetgame/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	identities map[string]*model.Identity
	tokenIndex map[string]string // session token -> name
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		identities: make(map[string]*model.Identity),
		tokenIndex: make(map[string]string),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateIdentity(ctx context.Context, identity *model.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.identities[identity.Name]; ok {
		return model.ErrIdentityExists
	}
	stored := *identity
	s.identities[identity.Name] = &stored
	s.tokenIndex[identity.SessionToken] = identity.Name
	return nil
}

func (s *Storage) GetIdentity(ctx context.Context, name string) (*model.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.identities[name]
	if !ok {
		return nil, model.ErrIdentityNotFound
	}
	result := *identity
	return &result, nil
}

func (s *Storage) GetIdentityByToken(ctx context.Context, token string) (*model.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.tokenIndex[token]
	if !ok {
		return nil, model.ErrIdentityNotFound
	}
	identity, ok := s.identities[name]
	if !ok {
		return nil, model.ErrIdentityNotFound
	}
	result := *identity
	return &result, nil
}

func (s *Storage) CountIdentities(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.identities), nil
}
