package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	pkgerrors "github.com/angelmondragon/bestprice-backend/pkg/errors"
	pkgredis "github.com/angelmondragon/bestprice-backend/pkg/redis"
)

// Store keeps one cart per session and replaces it whole on save.
type Store interface {
	Get(ctx context.Context, sessionID string) (Cart, error)
	Save(ctx context.Context, c Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore keeps carts in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: map[string]Cart{}}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[sessionID]
	if !ok {
		return New(sessionID), nil
	}
	return c.clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, c Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[c.SessionID] = c.clone()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

type keyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Touch(ctx context.Context, key string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// RedisStore keeps carts as JSON documents with a sliding TTL. Reads and
// writes both restart the expiry.
type RedisStore struct {
	kv  keyValue
	ttl time.Duration
}

func NewRedisStore(kv keyValue, ttl time.Duration) *RedisStore {
	return &RedisStore{kv: kv, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (Cart, error) {
	key := s.kv.CartKey(sessionID)
	raw, err := s.kv.Get(ctx, key)
	if pkgredis.IsNil(err) {
		return New(sessionID), nil
	}
	if err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read cart")
	}
	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode cart")
	}
	if c.Lines == nil {
		c.Lines = []Line{}
	}
	c.SessionID = sessionID
	if err := s.kv.Touch(ctx, key, s.ttl); err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh cart ttl")
	}
	return c, nil
}

func (s *RedisStore) Save(ctx context.Context, c Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.kv.Set(ctx, s.kv.CartKey(c.SessionID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write cart")
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.kv.Del(ctx, s.kv.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart")
	}
	return nil
}
