package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
)

var ErrNotFound = errors.New("object not found")

// Store is the blob backend for uploaded files and content images.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

type Mode string

const (
	ModeLocal       Mode = "local"
	ModeGCS         Mode = "gcs"
	ModeGCSEmulator Mode = "gcs_emulator"
)

func ParseMode(raw string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(raw))); m {
	case "":
		return ModeLocal, nil
	case ModeLocal, ModeGCS, ModeGCSEmulator:
		return m, nil
	default:
		return "", fmt.Errorf("unsupported storage mode %q (allowed: %q, %q, %q)", raw, ModeLocal, ModeGCS, ModeGCSEmulator)
	}
}

// CleanKey normalizes a storage key and rejects keys escaping the root.
func CleanKey(key string) (string, error) {
	raw := strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	for _, seg := range strings.Split(raw, "/") {
		if seg == ".." {
			return "", fmt.Errorf("storage key %q escapes root", key)
		}
	}
	k := strings.TrimLeft(path.Clean("/"+raw), "/")
	if k == "" {
		return "", fmt.Errorf("empty storage key")
	}
	return k, nil
}

// JoinURL appends an escaped key to base.
func JoinURL(base, key string) string {
	segs := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(segs, "/")
}
