package team

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRepository stores builder sessions as team documents.
type SessionRepository interface {
	Save(ctx context.Context, id string, doc Document) error
	// Load returns (nil, nil) when the session does not exist.
	Load(ctx context.Context, id string) (*Document, error)
	Delete(ctx context.Context, id string) error
}

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]Document
}

// NewMemorySessionRepository keeps sessions in process memory.
func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{sessions: make(map[string]Document)}
}

func copyDocument(doc Document) Document {
	out := doc
	out.Players = append([]DocumentPlayer(nil), doc.Players...)
	return out
}

func (r *memorySessionRepository) Save(_ context.Context, id string, doc Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = copyDocument(doc)
	return nil
}

func (r *memorySessionRepository) Load(_ context.Context, id string) (*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	out := copyDocument(doc)
	return &out, nil
}

func (r *memorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

const redisSessionPrefix = "miximax:builder:"

type redisSessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisSessionRepository keeps sessions in redis; every save refreshes
// the expiry to ttl.
func NewRedisSessionRepository(rdb *redis.Client, ttl time.Duration) SessionRepository {
	return &redisSessionRepository{rdb: rdb, ttl: ttl}
}

func (r *redisSessionRepository) Save(ctx context.Context, id string, doc Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", id, err)
	}
	return r.rdb.Set(ctx, redisSessionPrefix+id, raw, r.ttl).Err()
}

func (r *redisSessionRepository) Load(ctx context.Context, id string) (*Document, error) {
	raw, err := r.rdb.Get(ctx, redisSessionPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &doc, nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, redisSessionPrefix+id).Err()
}
