package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// LiveSessionTTL bounds how long an idle live session survives
const LiveSessionTTL = 24 * time.Hour

// RedisSessionStore keeps live sessions as JSON documents in Redis
type RedisSessionStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{redis: client, ttl: LiveSessionTTL}
}

func sessionKey(id string) string {
	return fmt.Sprintf("cooking:session:%s", id)
}

func (r *RedisSessionStore) Save(ctx context.Context, session *LiveSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.redis.Set(ctx, sessionKey(session.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session to Redis: %w", err)
	}
	return nil
}

func (r *RedisSessionStore) Get(ctx context.Context, id string) (*LiveSession, error) {
	data, err := r.redis.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var session LiveSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return r.redis.Del(ctx, sessionKey(id)).Err()
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemorySessionStore is the single-process fallback used when Redis is unavailable
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]memoryEntry),
		ttl:      LiveSessionTTL,
		now:      time.Now,
	}
}

// Save stores a copy so callers cannot mutate stored state. Expired
// sessions are swept on every save so abandoned ones do not accumulate.
func (m *MemorySessionStore) Save(_ context.Context, session *LiveSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, entry := range m.sessions {
		if now.After(entry.expiresAt) {
			delete(m.sessions, id)
		}
	}
	m.sessions[session.ID] = memoryEntry{data: data, expiresAt: now.Add(m.ttl)}
	return nil
}

// size reports how many sessions are held, expired or not
func (m *MemorySessionStore) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (*LiveSession, error) {
	m.mu.Lock()
	entry, ok := m.sessions[id]
	if ok && m.now().After(entry.expiresAt) {
		delete(m.sessions, id)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	var session LiveSession
	if err := json.Unmarshal(entry.data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
