package flash

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
)

const defaultTTL = 10 * time.Minute

type RedisOptions struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

// RedisStore keeps a list per user so messages survive across replicas.
type RedisStore struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(ctx context.Context, log *logger.Logger, opts RedisOptions) (*RedisStore, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("missing redis.addr")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newRedisStore(log, rdb, opts), nil
}

func newRedisStore(log *logger.Logger, rdb *goredis.Client, opts RedisOptions) *RedisStore {
	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = "assetdesk:flash:"
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStore{
		log:    log.With("service", "RedisFlashStore"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *RedisStore) key(userID uuid.UUID) string { return s.prefix + userID.String() }

func (s *RedisStore) Add(ctx context.Context, userID uuid.UUID, msg Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	k := s.key(userID)
	_, err = s.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.RPush(ctx, k, raw)
		p.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis flash add: %w", err)
	}
	return nil
}

func (s *RedisStore) Pop(ctx context.Context, userID uuid.UUID) ([]Message, error) {
	k := s.key(userID)
	var rng *goredis.StringSliceCmd
	_, err := s.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		rng = p.LRange(ctx, k, 0, -1)
		p.Del(ctx, k)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis flash pop: %w", err)
	}
	out := make([]Message, 0, len(rng.Val()))
	for _, raw := range rng.Val() {
		var m Message
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			s.log.Warn("Dropping malformed flash message", "user_id", userID, "error", err)
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *RedisStore) Close() error { return s.rdb.Close() }
