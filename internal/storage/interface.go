package storage

import (
	"context"

	"github.com/mcoot/planetgame/internal/model"
)

// Storage defines the interface for identity persistence.
// The game aggregate itself is held in memory by the game session.
type Storage interface {
	// CreateIdentity stores a new identity. It returns model.ErrIdentityExists
	// if the name is already registered, so registration is first-writer-wins.
	CreateIdentity(ctx context.Context, identity *model.Identity) error
	GetIdentity(ctx context.Context, name string) (*model.Identity, error)
	GetIdentityByToken(ctx context.Context, token string) (*model.Identity, error)
	CountIdentities(ctx context.Context) (int, error)
}
