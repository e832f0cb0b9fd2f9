package gcp

import (
	"errors"
	"testing"

	"github.com/yungbote/assetdesk-backend/internal/platform/objectstore"
)

func TestValidateStorageConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  StorageConfig
		code ConfigErrorCode
	}{
		{name: "gcs ok", cfg: StorageConfig{Mode: objectstore.ModeGCS, Bucket: "assets"}},
		{name: "emulator ok", cfg: StorageConfig{Mode: objectstore.ModeGCSEmulator, Bucket: "assets", EmulatorHost: "http://fake-gcs:4443"}},
		{name: "local rejected", cfg: StorageConfig{Mode: objectstore.ModeLocal, Bucket: "assets"}, code: ConfigErrorInvalidMode},
		{name: "missing bucket", cfg: StorageConfig{Mode: objectstore.ModeGCS}, code: ConfigErrorMissingBucket},
		{name: "missing emulator host", cfg: StorageConfig{Mode: objectstore.ModeGCSEmulator, Bucket: "assets"}, code: ConfigErrorMissingEmulatorHost},
		{name: "relative emulator host", cfg: StorageConfig{Mode: objectstore.ModeGCSEmulator, Bucket: "assets", EmulatorHost: "fake-gcs:4443"}, code: ConfigErrorInvalidEmulatorHost},
		{name: "bad public base", cfg: StorageConfig{Mode: objectstore.ModeGCS, Bucket: "assets", PublicBaseURL: "/cdn"}, code: ConfigErrorInvalidPublicBase},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStorageConfig(tc.cfg)
			if tc.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("want *ConfigError got=%v", err)
			}
			if cfgErr.Code != tc.code {
				t.Fatalf("code: want=%s got=%s", tc.code, cfgErr.Code)
			}
		})
	}
}
