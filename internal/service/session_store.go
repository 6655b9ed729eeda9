package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const sessionKeyPrefix = "admin_session:"

// SessionStore tracks live privileged sessions by token ID so that logout can
// revoke a session before its token expires.
type SessionStore interface {
	Save(ctx context.Context, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenID string) error
}

type redisSessionStore struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewRedisSessionStore(client *redis.Client, log *logrus.Logger) SessionStore {
	return &redisSessionStore{client: client, log: log}
}

func (s *redisSessionStore) Save(ctx context.Context, tokenID string, ttl time.Duration) error {
	key := fmt.Sprintf("%s%s", sessionKeyPrefix, tokenID)
	if err := s.client.Set(ctx, key, "valid", ttl).Err(); err != nil {
		s.log.Warnf("Failed to store session in Redis: %+v", err)
		return err
	}
	return nil
}

func (s *redisSessionStore) Exists(ctx context.Context, tokenID string) (bool, error) {
	key := fmt.Sprintf("%s%s", sessionKeyPrefix, tokenID)
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		s.log.Warnf("Failed to check session in Redis: %+v", err)
		return false, err
	}
	return exists > 0, nil
}

func (s *redisSessionStore) Revoke(ctx context.Context, tokenID string) error {
	key := fmt.Sprintf("%s%s", sessionKeyPrefix, tokenID)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.log.Warnf("Failed to revoke session in Redis: %+v", err)
		return err
	}
	return nil
}

// memorySessionStore is a process-local store for single-instance deployments
// and tests. Expired entries are dropped lazily on lookup.
type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]time.Time
}

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		sessions: make(map[string]time.Time),
	}
}

func (s *memorySessionStore) Save(ctx context.Context, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[tokenID] = time.Now().Add(ttl)
	return nil
}

func (s *memorySessionStore) Exists(ctx context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.sessions[tokenID]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(s.sessions, tokenID)
		return false, nil
	}
	return true, nil
}

func (s *memorySessionStore) Revoke(ctx context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tokenID)
	return nil
}
