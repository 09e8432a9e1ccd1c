package memory

import (
	"context"
	"sync"

	"pet-grooming/internal/ports/kv"
)

type kvKey struct {
	scope kv.Scope
	key   string
}

// KV implementa kv.Store en proceso. Sin TTL: se pierde al reiniciar.
type KV struct {
	mu   sync.RWMutex
	data map[kvKey]string
}

func NewKV() *KV {
	return &KV{data: make(map[kvKey]string)}
}

var _ kv.Store = (*KV)(nil)

func (s *KV) Get(ctx context.Context, scope kv.Scope, key string) (string, bool, error) {
	if !scope.Valid() {
		return "", false, kv.ErrInvalidScope
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[kvKey{scope: scope, key: key}]
	return v, ok, nil
}

func (s *KV) Set(ctx context.Context, scope kv.Scope, key, value string) error {
	if !scope.Valid() {
		return kv.ErrInvalidScope
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[kvKey{scope: scope, key: key}] = value
	return nil
}

func (s *KV) Delete(ctx context.Context, scope kv.Scope, key string) error {
	if !scope.Valid() {
		return kv.ErrInvalidScope
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, kvKey{scope: scope, key: key})
	return nil
}
