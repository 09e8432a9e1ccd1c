package redis

import (
	"context"
	"errors"
	"testing"

	"pet-grooming/internal/ports/kv"
)

func TestRedisKey_Layout(t *testing.T) {
	got := redisKey(kv.TabScope("tab-1"), "session")
	if got != "petgrooming:tab:tab-1:session" {
		t.Fatalf("unexpected key %q", got)
	}
	got = redisKey(kv.DeviceScope("dev-9"), "transactions")
	if got != "petgrooming:device:dev-9:transactions" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestStore_InvalidScopeNeverHitsRedis(t *testing.T) {
	// cliente apuntando a nada: si se llamara a redis fallaría con error de red
	s := New(Options{Addr: "127.0.0.1:1"})
	defer s.Close()
	ctx := context.Background()

	if _, _, err := s.Get(ctx, kv.Scope{}, "k"); !errors.Is(err, kv.ErrInvalidScope) {
		t.Fatalf("expected ErrInvalidScope, got %v", err)
	}
	if err := s.Set(ctx, kv.Scope{Kind: kv.Ephemeral}, "k", "v"); !errors.Is(err, kv.ErrInvalidScope) {
		t.Fatalf("expected ErrInvalidScope, got %v", err)
	}
	if err := s.Delete(ctx, kv.Scope{Kind: "x", ID: "1"}, "k"); !errors.Is(err, kv.ErrInvalidScope) {
		t.Fatalf("expected ErrInvalidScope, got %v", err)
	}
}
