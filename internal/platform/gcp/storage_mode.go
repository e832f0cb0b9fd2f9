package gcp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/yungbote/assetdesk-backend/internal/platform/objectstore"
)

// StorageConfig describes the single bucket backing uploaded files.
type StorageConfig struct {
	Mode          objectstore.Mode
	Bucket        string
	EmulatorHost  string
	CDNDomain     string
	PublicBaseURL string
	Credentials   string
}

func (cfg StorageConfig) IsEmulatorMode() bool {
	return cfg.Mode == objectstore.ModeGCSEmulator
}

type ConfigErrorCode string

const (
	ConfigErrorInvalidMode         ConfigErrorCode = "invalid_mode"
	ConfigErrorMissingBucket       ConfigErrorCode = "missing_bucket"
	ConfigErrorMissingEmulatorHost ConfigErrorCode = "missing_emulator_host"
	ConfigErrorInvalidEmulatorHost ConfigErrorCode = "invalid_emulator_host"
	ConfigErrorInvalidPublicBase   ConfigErrorCode = "invalid_public_base_url"
)

type ConfigError struct {
	Code  ConfigErrorCode
	Mode  string
	Value string
	Cause error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "invalid object storage config"
	}
	switch e.Code {
	case ConfigErrorInvalidMode:
		return fmt.Sprintf("invalid storage.mode=%q for gcs backend (allowed: %q, %q)",
			e.Mode, objectstore.ModeGCS, objectstore.ModeGCSEmulator)
	case ConfigErrorMissingBucket:
		return "storage.bucket is required"
	case ConfigErrorMissingEmulatorHost:
		return fmt.Sprintf("storage.mode=%q requires storage.emulator_host", objectstore.ModeGCSEmulator)
	case ConfigErrorInvalidEmulatorHost:
		return fmt.Sprintf("invalid storage.emulator_host=%q; expected absolute URL like http://fake-gcs:4443", e.Value)
	case ConfigErrorInvalidPublicBase:
		return fmt.Sprintf("invalid storage.public_base_url=%q; expected absolute URL", e.Value)
	default:
		return "invalid object storage config"
	}
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func ValidateStorageConfig(cfg StorageConfig) error {
	switch cfg.Mode {
	case objectstore.ModeGCS, objectstore.ModeGCSEmulator:
	default:
		return &ConfigError{Code: ConfigErrorInvalidMode, Mode: string(cfg.Mode)}
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return &ConfigError{Code: ConfigErrorMissingBucket, Mode: string(cfg.Mode)}
	}
	if raw := strings.TrimSpace(cfg.PublicBaseURL); raw != "" {
		if err := requireAbsoluteURL(raw); err != nil {
			return &ConfigError{Code: ConfigErrorInvalidPublicBase, Mode: string(cfg.Mode), Value: raw, Cause: err}
		}
	}
	if !cfg.IsEmulatorMode() {
		return nil
	}
	host := strings.TrimSpace(cfg.EmulatorHost)
	if host == "" {
		return &ConfigError{Code: ConfigErrorMissingEmulatorHost, Mode: string(cfg.Mode)}
	}
	if err := requireAbsoluteURL(host); err != nil {
		return &ConfigError{Code: ConfigErrorInvalidEmulatorHost, Mode: string(cfg.Mode), Value: host, Cause: err}
	}
	return nil
}

func requireAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if strings.TrimSpace(u.Scheme) == "" || strings.TrimSpace(u.Host) == "" {
		return fmt.Errorf("missing scheme or host")
	}
	return nil
}
