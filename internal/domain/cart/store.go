// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// ErrSessionRequired is returned when a cart operation has no session id
var ErrSessionRequired = errors.New("session ID required for cart")

// Store persists one cart document per session. Documents are written whole;
// concurrent writers race and the last write wins.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
}

// RedisStore keeps cart documents as JSON under a well-known key per session
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisStore creates a Redis cart store
func NewRedisStore(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (s *RedisStore) key(sessionID string) string {
	return s.keyPrefix + sessionID
}

// Load returns the stored cart, or an empty one when none exists
func (s *RedisStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err == redis.Nil {
		return NewCart(sessionID), nil
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to read cart")
	}

	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "failed to decode cart")
	}
	if c.Lines == nil {
		c.Lines = []Line{}
	}
	return &c, nil
}

// Save replaces the stored cart and refreshes its expiry
func (s *RedisStore) Save(ctx context.Context, c *Cart) error {
	if c.SessionID == "" {
		return ErrSessionRequired
	}

	data, err := json.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to encode cart")
	}
	return errors.Wrap(s.client.Set(ctx, s.key(c.SessionID), data, s.ttl).Err(), "failed to write cart")
}

// MemoryStore keeps serialized carts in process memory
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]byte)}
}

// Load returns a decoded copy of the stored cart
func (s *MemoryStore) Load(_ context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	s.mu.Lock()
	data, ok := s.carts[sessionID]
	s.mu.Unlock()
	if !ok {
		return NewCart(sessionID), nil
	}

	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "failed to decode cart")
	}
	return &c, nil
}

// Save stores a serialized copy of the cart
func (s *MemoryStore) Save(_ context.Context, c *Cart) error {
	if c.SessionID == "" {
		return ErrSessionRequired
	}

	data, err := json.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to encode cart")
	}

	s.mu.Lock()
	s.carts[c.SessionID] = data
	s.mu.Unlock()
	return nil
}
