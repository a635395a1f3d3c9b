package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/planetgame/internal/dependencies/clock"
	"github.com/mcoot/planetgame/internal/model"
	"github.com/mcoot/planetgame/internal/storage"
)

// Credentials is what a caller presents to be identified. Any field may be empty.
type Credentials struct {
	Token    string
	Name     string
	Password string // the client-side password hash
}

// Anonymous returns true if nothing identifying was presented
func (c Credentials) Anonymous() bool {
	return c.Token == "" && c.Name == ""
}

// Service resolves callers to identities and registers first-seen names
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	// serializes first-time registration
	mu sync.Mutex
}

// New creates a new identity Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Resolve maps credentials to an identity. A known token wins without a
// credential check. A known name requires a matching password, and a new
// name is registered with a fresh token. Nothing usable yields nil, nil.
func (s *Service) Resolve(ctx context.Context, creds Credentials) (*model.Identity, error) {
	if creds.Token != "" {
		identity, err := s.storage.GetIdentityByToken(ctx, creds.Token)
		if err == nil {
			return identity, nil
		}
		if !errors.Is(err, model.ErrIdentityNotFound) {
			return nil, err
		}
	}

	if creds.Name == "" {
		return nil, nil
	}

	return s.resolveByName(ctx, creds.Name, creds.Password)
}

// IssueToken returns the session token for a name and password, registering
// the name if it has not been seen before
func (s *Service) IssueToken(ctx context.Context, name, password string) (string, error) {
	if name == "" {
		return "", model.ErrUnauthorized
	}
	identity, err := s.resolveByName(ctx, name, password)
	if err != nil {
		return "", err
	}
	return identity.SessionToken, nil
}

// Count returns the number of registered identities
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.storage.CountIdentities(ctx)
}

func (s *Service) resolveByName(ctx context.Context, name, password string) (*model.Identity, error) {
	identity, err := s.storage.GetIdentity(ctx, name)
	if err == nil {
		return s.verify(identity, password)
	}
	if !errors.Is(err, model.ErrIdentityNotFound) {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the lock in case a concurrent caller registered it first
	identity, err = s.storage.GetIdentity(ctx, name)
	if err == nil {
		return s.verify(identity, password)
	}
	if !errors.Is(err, model.ErrIdentityNotFound) {
		return nil, err
	}

	return s.register(ctx, name, password)
}

func (s *Service) register(ctx context.Context, name, password string) (*model.Identity, error) {
	hash, err := bcrypt.GenerateFromPassword(credentialDigest(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash credential: %w", err)
	}

	identity := &model.Identity{
		Name:           name,
		CredentialHash: string(hash),
		SessionToken:   newToken(),
		CreatedAt:      s.clock.Now(),
	}

	if err := s.storage.CreateIdentity(ctx, identity); err != nil {
		if errors.Is(err, model.ErrIdentityExists) {
			// Another process sharing the backend won the race
			existing, getErr := s.storage.GetIdentity(ctx, name)
			if getErr != nil {
				return nil, getErr
			}
			return s.verify(existing, password)
		}
		return nil, err
	}

	s.logger.Info("identity registered", slog.String("name", name))
	return identity, nil
}

func (s *Service) verify(identity *model.Identity, password string) (*model.Identity, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(identity.CredentialHash), credentialDigest(password)); err != nil {
		s.logger.Warn("credential mismatch", slog.String("name", identity.Name))
		return nil, model.ErrUnauthorized
	}
	return identity, nil
}

// credentialDigest fixes the bcrypt input at 64 bytes so credentials of any
// length hash without hitting bcrypt's 72-byte limit
func credentialDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}

// newToken returns an unguessable opaque token in hex form
func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
