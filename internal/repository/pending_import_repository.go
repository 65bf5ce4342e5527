package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrPendingImportNotFound is returned for unknown, expired or consumed tokens.
var ErrPendingImportNotFound = errors.New("pending import not found")

// PendingImport is a validated import payload awaiting confirmation.
type PendingImport struct {
	Token     string
	Payload   []byte
	ExpiresAt time.Time
}

// PendingImportRepository stores staged imports until they are confirmed,
// cancelled or expire.
type PendingImportRepository interface {
	Create(ctx context.Context, pending *PendingImport) error
	// Take returns the pending import and removes it, so a token confirms once.
	Take(ctx context.Context, token string) (*PendingImport, error)
	Delete(ctx context.Context, token string) error
}

type memoryPendingImportRepository struct {
	mu      sync.Mutex
	now     func() time.Time
	pending map[string]PendingImport
}

// NewMemoryPendingImportRepository keeps staged imports in process memory.
func NewMemoryPendingImportRepository() PendingImportRepository {
	return &memoryPendingImportRepository{now: time.Now, pending: make(map[string]PendingImport)}
}

func (r *memoryPendingImportRepository) Create(_ context.Context, pending *PendingImport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired()
	r.pending[pending.Token] = PendingImport{
		Token:     pending.Token,
		Payload:   append([]byte(nil), pending.Payload...),
		ExpiresAt: pending.ExpiresAt,
	}
	return nil
}

func (r *memoryPendingImportRepository) Take(_ context.Context, token string) (*PendingImport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired()
	pending, ok := r.pending[token]
	if !ok {
		return nil, ErrPendingImportNotFound
	}
	delete(r.pending, token)
	return &pending, nil
}

func (r *memoryPendingImportRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pending[token]; !ok {
		return ErrPendingImportNotFound
	}
	delete(r.pending, token)
	return nil
}

// evictExpired must be called with mu held.
func (r *memoryPendingImportRepository) evictExpired() {
	now := r.now()
	for token, pending := range r.pending {
		if !pending.ExpiresAt.IsZero() && now.After(pending.ExpiresAt) {
			delete(r.pending, token)
		}
	}
}

type redisPendingImportRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisPendingImportRepository stores staged imports with a Redis TTL.
func NewRedisPendingImportRepository(client *redis.Client, prefix string) PendingImportRepository {
	return &redisPendingImportRepository{client: client, prefix: prefix + "pending-import:"}
}

func (r *redisPendingImportRepository) Create(ctx context.Context, pending *PendingImport) error {
	ttl := time.Until(pending.ExpiresAt)
	if ttl <= 0 {
		return errors.New("pending import already expired")
	}
	return r.client.Set(ctx, r.prefix+pending.Token, pending.Payload, ttl).Err()
}

func (r *redisPendingImportRepository) Take(ctx context.Context, token string) (*PendingImport, error) {
	payload, err := r.client.GetDel(ctx, r.prefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrPendingImportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &PendingImport{Token: token, Payload: payload}, nil
}

func (r *redisPendingImportRepository) Delete(ctx context.Context, token string) error {
	removed, err := r.client.Del(ctx, r.prefix+token).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrPendingImportNotFound
	}
	return nil
}
