package repository

import (
	"context"
	"errors"
	"sync"
)

// ErrSlotNotFound is returned when a slot has never been written.
var ErrSlotNotFound = errors.New("slot not found")

// SlotRepository is a durable key-value store holding one JSON document per key.
type SlotRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}

type memorySlotRepository struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemorySlotRepository keeps slots in process memory.
func NewMemorySlotRepository() SlotRepository {
	return &memorySlotRepository{slots: make(map[string][]byte)}
}

func (r *memorySlotRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	val, ok := r.slots[key]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return append([]byte(nil), val...), nil
}

func (r *memorySlotRepository) Put(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[key] = append([]byte(nil), value...)
	return nil
}

func (r *memorySlotRepository) Ping(context.Context) error {
	return nil
}
