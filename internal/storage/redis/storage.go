package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/planetgame/internal/model"
	"github.com/mcoot/planetgame/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateIdentity(ctx context.Context, identity *model.Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return err
	}

	// SETNX makes the name claim atomic across concurrent registrations
	created, err := s.client.SetNX(ctx, identityKey(identity.Name), data, s.cfg.IdentityTTL).Result()
	if err != nil {
		return err
	}
	if !created {
		return model.ErrIdentityExists
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, tokenIndexKey(identity.SessionToken), identity.Name, s.cfg.IdentityTTL)
	pipe.SAdd(ctx, identitySetKey(), identity.Name)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetIdentity(ctx context.Context, name string) (*model.Identity, error) {
	data, err := s.client.Get(ctx, identityKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrIdentityNotFound
		}
		return nil, err
	}

	var identity model.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (s *Storage) GetIdentityByToken(ctx context.Context, token string) (*model.Identity, error) {
	// Look up name from token index
	name, err := s.client.Get(ctx, tokenIndexKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrIdentityNotFound
		}
		return nil, err
	}

	return s.GetIdentity(ctx, name)
}

func (s *Storage) CountIdentities(ctx context.Context) (int, error) {
	count, err := s.client.SCard(ctx, identitySetKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
