package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pet-grooming/internal/ports/kv"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "petgrooming"

type Options struct {
	Addr     string
	Password string
	DB       int
	// TabTTL expira las claves por pestaña (sesión, csrf). 0 => sin vencimiento.
	TabTTL time.Duration
}

// Store implementa kv.Store sobre Redis.
// Claves: petgrooming:{tab|device}:{id}:{key}.
type Store struct {
	rdb    goredis.UniversalClient
	tabTTL time.Duration
}

var _ kv.Store = (*Store)(nil)

func New(opts Options) *Store {
	return &Store{
		rdb: goredis.NewClient(&goredis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}),
		tabTTL: opts.TabTTL,
	}
}

func NewWithClient(rdb goredis.UniversalClient, tabTTL time.Duration) *Store {
	return &Store{rdb: rdb, tabTTL: tabTTL}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func redisKey(scope kv.Scope, key string) string {
	return fmt.Sprintf("%s:%s:%s:%s", keyPrefix, scope.Kind, scope.ID, key)
}

func (s *Store) Get(ctx context.Context, scope kv.Scope, key string) (string, bool, error) {
	if !scope.Valid() {
		return "", false, kv.ErrInvalidScope
	}
	v, err := s.rdb.Get(ctx, redisKey(scope, key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, scope kv.Scope, key, value string) error {
	if !scope.Valid() {
		return kv.ErrInvalidScope
	}
	var ttl time.Duration
	if scope.Kind == kv.Ephemeral {
		ttl = s.tabTTL
	}
	if err := s.rdb.Set(ctx, redisKey(scope, key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, scope kv.Scope, key string) error {
	if !scope.Valid() {
		return kv.ErrInvalidScope
	}
	if err := s.rdb.Del(ctx, redisKey(scope, key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

var fixedWindowScript = goredis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// Incr cuenta hits en una ventana fija; la clave expira sola al cerrar la ventana.
func (s *Store) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	ms := window.Milliseconds()
	if ms <= 0 {
		ms = time.Minute.Milliseconds()
	}
	n, err := fixedWindowScript.Run(ctx, s.rdb, []string{keyPrefix + ":rl:" + key}, ms).Int64()
	if err != nil {
		return 0, fmt.Errorf("redis incr: %w", err)
	}
	return n, nil
}
