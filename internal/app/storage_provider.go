package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/assetdesk-backend/internal/platform/gcp"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
	"github.com/yungbote/assetdesk-backend/internal/platform/objectstore"
)

var newBucketStore = func(ctx context.Context, log *logger.Logger, cfg gcp.StorageConfig) (objectstore.Store, func() error, error) {
	bs, err := gcp.NewBucketStore(ctx, log, cfg)
	if err != nil {
		return nil, nil, err
	}
	return bs, bs.Close, nil
}

type StorageProviderBootstrapErrorCode string

const (
	StorageProviderBootstrapErrorInvalidMode         StorageProviderBootstrapErrorCode = "invalid_mode"
	StorageProviderBootstrapErrorMissingBucket       StorageProviderBootstrapErrorCode = "missing_bucket"
	StorageProviderBootstrapErrorMissingEmulatorHost StorageProviderBootstrapErrorCode = "missing_emulator_host"
	StorageProviderBootstrapErrorInvalidEmulatorHost StorageProviderBootstrapErrorCode = "invalid_emulator_host"
	StorageProviderBootstrapErrorInvalidPublicBase   StorageProviderBootstrapErrorCode = "invalid_public_base_url"
	StorageProviderBootstrapErrorConnectFailed       StorageProviderBootstrapErrorCode = "connect_failed"
)

type StorageProviderBootstrapError struct {
	Code         StorageProviderBootstrapErrorCode
	Mode         string
	EmulatorHost string
	Cause        error
}

func (e *StorageProviderBootstrapError) Error() string {
	if e == nil {
		return "object storage bootstrap failed"
	}
	return fmt.Sprintf(
		"object storage bootstrap failed (code=%s mode=%q emulator_host=%q): %v",
		e.Code,
		e.Mode,
		e.EmulatorHost,
		e.Cause,
	)
}

func (e *StorageProviderBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// resolveObjectStore picks the backend for uploads and content images.
// The returned closer is never nil.
func resolveObjectStore(ctx context.Context, log *logger.Logger, cfg StorageConfig) (objectstore.Store, func() error, error) {
	noop := func() error { return nil }
	mode, err := objectstore.ParseMode(cfg.Mode)
	if err != nil {
		bootErr := &StorageProviderBootstrapError{
			Code:         StorageProviderBootstrapErrorInvalidMode,
			Mode:         cfg.Mode,
			EmulatorHost: cfg.EmulatorHost,
			Cause:        err,
		}
		log.Error("Object storage provider selection failed", "mode", cfg.Mode, "error_code", bootErr.Code, "error", err)
		return nil, noop, bootErr
	}

	log.Info("Selecting object storage provider", "mode", mode, "emulator_host", cfg.EmulatorHost)

	if mode == objectstore.ModeLocal {
		store, err := objectstore.NewLocalDiskStore(log, strings.TrimSpace(cfg.LocalRoot), cfg.PublicBaseURL)
		if err != nil {
			bootErr := &StorageProviderBootstrapError{
				Code:  StorageProviderBootstrapErrorConnectFailed,
				Mode:  string(mode),
				Cause: err,
			}
			log.Error("Object storage provider bootstrap failed", "mode", mode, "error_code", bootErr.Code, "error", err)
			return nil, noop, bootErr
		}
		return store, noop, nil
	}

	gcsCfg := gcp.StorageConfig{
		Mode:          mode,
		Bucket:        strings.TrimSpace(cfg.Bucket),
		EmulatorHost:  strings.TrimSpace(cfg.EmulatorHost),
		CDNDomain:     strings.TrimSpace(cfg.CDNDomain),
		PublicBaseURL: strings.TrimSpace(cfg.PublicBaseURL),
		Credentials:   strings.TrimSpace(cfg.Credentials),
	}
	store, closer, err := newBucketStore(ctx, log, gcsCfg)
	if err != nil {
		classified := classifyStorageProviderBootstrapError(gcsCfg, err)
		log.Error(
			"Object storage provider bootstrap failed",
			"mode", mode,
			"bucket", gcsCfg.Bucket,
			"emulator_host", gcsCfg.EmulatorHost,
			"error_code", storageProviderBootstrapErrorCode(classified),
			"error", classified,
		)
		return nil, noop, classified
	}
	if closer == nil {
		closer = noop
	}
	return store, closer, nil
}

func classifyStorageProviderBootstrapError(cfg gcp.StorageConfig, err error) error {
	out := &StorageProviderBootstrapError{
		Code:         StorageProviderBootstrapErrorConnectFailed,
		Mode:         string(cfg.Mode),
		EmulatorHost: cfg.EmulatorHost,
		Cause:        err,
	}
	var cfgErr *gcp.ConfigError
	if errors.As(err, &cfgErr) {
		switch cfgErr.Code {
		case gcp.ConfigErrorInvalidMode:
			out.Code = StorageProviderBootstrapErrorInvalidMode
		case gcp.ConfigErrorMissingBucket:
			out.Code = StorageProviderBootstrapErrorMissingBucket
		case gcp.ConfigErrorMissingEmulatorHost:
			out.Code = StorageProviderBootstrapErrorMissingEmulatorHost
		case gcp.ConfigErrorInvalidEmulatorHost:
			out.Code = StorageProviderBootstrapErrorInvalidEmulatorHost
		case gcp.ConfigErrorInvalidPublicBase:
			out.Code = StorageProviderBootstrapErrorInvalidPublicBase
		}
	}
	return out
}

func storageProviderBootstrapErrorCode(err error) StorageProviderBootstrapErrorCode {
	var bootstrapErr *StorageProviderBootstrapError
	if errors.As(err, &bootstrapErr) && bootstrapErr.Code != "" {
		return bootstrapErr.Code
	}
	return StorageProviderBootstrapErrorConnectFailed
}
