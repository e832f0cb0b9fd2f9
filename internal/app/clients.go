package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/assetdesk-backend/internal/platform/flash"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
)

// resolveFlashStore uses Redis when redis.addr is set so messages are shared
// across replicas; otherwise messages live in process memory.
func resolveFlashStore(ctx context.Context, log *logger.Logger, cfg RedisConfig) (flash.Store, func() error, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		log.Info("Flash store: memory")
		return flash.NewMemoryStore(), func() error { return nil }, nil
	}
	store, err := flash.NewRedisStore(ctx, log, flash.RedisOptions{
		Addr:      strings.TrimSpace(cfg.Addr),
		Password:  cfg.Password,
		DB:        cfg.DB,
		KeyPrefix: cfg.KeyPrefix,
		TTL:       cfg.TTL,
	})
	if err != nil {
		return nil, func() error { return nil }, fmt.Errorf("init redis flash store: %w", err)
	}
	log.Info("Flash store: redis", "addr", cfg.Addr, "db", cfg.DB)
	return store, store.Close, nil
}
