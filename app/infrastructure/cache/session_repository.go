package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"menlo.ai/catalog-admin/app/domain/auth"
	"menlo.ai/catalog-admin/app/utils/logger"
	"menlo.ai/catalog-admin/config/environment_variables"
)

// NewSessionRepository stores sessions in Redis when REDIS_URL is set and in
// process memory otherwise.
func NewSessionRepository() (auth.SessionRepository, error) {
	env := environment_variables.EnvironmentVariables
	if env.REDIS_URL == "" {
		logger.GetLogger().Warn("REDIS_URL is not set, sessions are kept in memory")
		return NewMemorySessionRepository(), nil
	}
	service, err := NewRedisCacheService(context.Background(), env.REDIS_URL, env.REDIS_PASSWORD, env.REDIS_DB)
	if err != nil {
		return nil, err
	}
	return NewRedisSessionRepository(service), nil
}

type RedisSessionRepository struct {
	cache *RedisCacheService
}

func NewRedisSessionRepository(cache *RedisCacheService) *RedisSessionRepository {
	return &RedisSessionRepository{cache: cache}
}

func (r *RedisSessionRepository) Save(ctx context.Context, record *auth.SessionRecord, ttl time.Duration) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.cache.Set(ctx, fmt.Sprintf(SessionByIDKey, record.ID), string(payload), ttl)
}

func (r *RedisSessionRepository) Find(ctx context.Context, id string) (*auth.SessionRecord, error) {
	payload, err := r.cache.Get(ctx, fmt.Sprintf(SessionByIDKey, id))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, auth.ErrSessionNotFound
		}
		return nil, err
	}
	var record auth.SessionRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &record, nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	return r.cache.Delete(ctx, fmt.Sprintf(SessionByIDKey, id))
}

func (r *RedisSessionRepository) HealthCheck(ctx context.Context) error {
	return r.cache.HealthCheck(ctx)
}

type memoryEntry struct {
	record    auth.SessionRecord
	expiresAt time.Time
}

// MemorySessionRepository drops expired sessions lazily on read.
type MemorySessionRepository struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemorySessionRepository) Save(ctx context.Context, record *auth.SessionRecord, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[record.ID] = memoryEntry{
		record:    *record,
		expiresAt: m.now().Add(ttl),
	}
	return nil
}

func (m *MemorySessionRepository) Find(ctx context.Context, id string) (*auth.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[id]
	if !ok {
		return nil, auth.ErrSessionNotFound
	}
	if !m.now().Before(entry.expiresAt) {
		delete(m.entries, id)
		return nil, auth.ErrSessionNotFound
	}
	record := entry.record
	return &record, nil
}

func (m *MemorySessionRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *MemorySessionRepository) HealthCheck(ctx context.Context) error {
	return nil
}
