package postgres

import (
	"context"
	"testing"
	"time"
)

func TestPoolOptions_Defaults(t *testing.T) {
	o := PoolOptions{}.withDefaults()
	if o.MaxOpenConns != 10 || o.MaxIdleConns != 5 || o.PingTimeout != 3*time.Second {
		t.Fatalf("unexpected defaults %+v", o)
	}

	o = PoolOptions{MaxOpenConns: 4, MaxIdleConns: 8}.withDefaults()
	if o.MaxIdleConns != 4 {
		t.Fatalf("idle conns must be capped at open conns, got %d", o.MaxIdleConns)
	}
}

func TestOpen_EmptyDSN(t *testing.T) {
	if _, err := Open(context.Background(), "", PoolOptions{}); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}
