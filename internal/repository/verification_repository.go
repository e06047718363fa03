package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// PendingRegistration holds a signup awaiting its one-time code.
type PendingRegistration struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Code         string `json:"code"`
}

// VerificationRepository stores pending registrations keyed by email, with a TTL.
type VerificationRepository interface {
	Put(ctx context.Context, pending PendingRegistration, ttl time.Duration) error
	Get(ctx context.Context, email string) (*PendingRegistration, error)
	Delete(ctx context.Context, email string) error
}

const pendingKeyPrefix = "pending_registration:"

type redisVerificationRepository struct {
	client *redis.Client
}

// NewRedisVerificationRepository returns a Redis-backed implementation.
// Expiry is delegated to Redis key TTLs.
func NewRedisVerificationRepository(client *redis.Client) VerificationRepository {
	return &redisVerificationRepository{client: client}
}

func (r *redisVerificationRepository) Put(ctx context.Context, pending PendingRegistration, ttl time.Duration) error {
	payload, err := json.Marshal(pending)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, pendingKeyPrefix+pending.Email, payload, ttl).Err()
}

func (r *redisVerificationRepository) Get(ctx context.Context, email string) (*PendingRegistration, error) {
	payload, err := r.client.Get(ctx, pendingKeyPrefix+email).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var pending PendingRegistration
	if err := json.Unmarshal(payload, &pending); err != nil {
		return nil, fmt.Errorf("decode pending registration: %w", err)
	}
	return &pending, nil
}

func (r *redisVerificationRepository) Delete(ctx context.Context, email string) error {
	return r.client.Del(ctx, pendingKeyPrefix+email).Err()
}

type memoryEntry struct {
	pending   PendingRegistration
	expiresAt time.Time
}

type memoryVerificationRepository struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryVerificationRepository returns an in-process implementation used
// when Redis is not configured and in tests.
func NewMemoryVerificationRepository() VerificationRepository {
	return &memoryVerificationRepository{entries: make(map[string]memoryEntry)}
}

func (r *memoryVerificationRepository) Put(_ context.Context, pending PendingRegistration, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[pending.Email] = memoryEntry{pending: pending, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (r *memoryVerificationRepository) Get(_ context.Context, email string) (*PendingRegistration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[email]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(r.entries, email)
		return nil, ErrNotFound
	}
	pending := entry.pending
	return &pending, nil
}

func (r *memoryVerificationRepository) Delete(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, email)
	return nil
}
