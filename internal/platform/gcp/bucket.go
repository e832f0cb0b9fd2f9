package gcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
	"github.com/yungbote/assetdesk-backend/internal/platform/objectstore"
)

const (
	writeTimeout  = 2 * time.Minute
	readTimeout   = 2 * time.Minute
	deleteTimeout = 30 * time.Second
)

// BucketStore is an objectstore.Store over a single GCS (or fake-gcs) bucket.
type BucketStore struct {
	log           *logger.Logger
	client        *storage.Client
	httpClient    *http.Client
	mode          objectstore.Mode
	bucket        string
	emulatorHost  string
	cdnDomain     string
	publicBaseURL string
}

var _ objectstore.Store = (*BucketStore)(nil)

func NewBucketStore(ctx context.Context, log *logger.Logger, cfg StorageConfig) (*BucketStore, error) {
	if err := ValidateStorageConfig(cfg); err != nil {
		return nil, fmt.Errorf("validate object storage config: %w", err)
	}
	client, err := newStorageClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	bs := newBucketStore(log, client, cfg)
	bs.log.Info("Object storage initialized",
		"mode", cfg.Mode,
		"bucket", bs.bucket,
		"emulator_host", bs.emulatorHost,
		"public_base_url", bs.publicBaseURL,
	)
	return bs, nil
}

func newBucketStore(log *logger.Logger, client *storage.Client, cfg StorageConfig) *BucketStore {
	publicBase := strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	emulator := strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/")
	if publicBase == "" && cfg.IsEmulatorMode() {
		publicBase = emulator
	}
	return &BucketStore{
		log:           log.With("service", "BucketStore"),
		client:        client,
		httpClient:    http.DefaultClient,
		mode:          cfg.Mode,
		bucket:        strings.TrimSpace(cfg.Bucket),
		emulatorHost:  emulator,
		cdnDomain:     strings.TrimSpace(cfg.CDNDomain),
		publicBaseURL: publicBase,
	}
}

func newStorageClient(ctx context.Context, cfg StorageConfig) (*storage.Client, error) {
	switch cfg.Mode {
	case objectstore.ModeGCS:
		opts := ClientOptions(cfg.Credentials)
		opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
		return storage.NewClient(ctx, opts...)
	case objectstore.ModeGCSEmulator:
		_ = os.Setenv("STORAGE_EMULATOR_HOST", strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/"))
		return storage.NewClient(ctx, option.WithoutAuthentication())
	default:
		return nil, &ConfigError{Code: ConfigErrorInvalidMode, Mode: string(cfg.Mode)}
	}
}

func (bs *BucketStore) Close() error {
	if bs == nil || bs.client == nil {
		return nil
	}
	return bs.client.Close()
}

func (bs *BucketStore) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	k, err := objectstore.CleanKey(key)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	w := bs.client.Bucket(bs.bucket).Object(k).NewWriter(ctx)
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(k))
	}
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

// Open returns a reader whose deadline is released on Close.
func (bs *BucketStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	k, err := objectstore.CleanKey(key)
	if err != nil {
		return nil, err
	}
	ctx2, cancel := context.WithTimeout(ctx, readTimeout)
	if bs.isEmulatorMode() {
		rc, err := bs.openEmulator(ctx2, k)
		if err != nil {
			cancel()
			return nil, err
		}
		return &readCloserWithCancel{ReadCloser: rc, cancel: cancel}, nil
	}
	r, err := bs.client.Bucket(bs.bucket).Object(k).NewReader(ctx2)
	if err != nil {
		cancel()
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, objectstore.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open GCS reader: %w", err)
	}
	return &readCloserWithCancel{ReadCloser: r, cancel: cancel}, nil
}

func (bs *BucketStore) openEmulator(ctx context.Context, key string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, bs.emulatorObjectMediaURL(key), nil)
	if err != nil {
		return nil, fmt.Errorf("failed creating emulator download request: %w", err)
	}
	resp, err := bs.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed emulator download request: %w", err)
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound:
		_ = resp.Body.Close()
		return nil, objectstore.ErrNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("emulator download failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}

// Delete treats a missing object as already deleted.
func (bs *BucketStore) Delete(ctx context.Context, key string) error {
	k, err := objectstore.CleanKey(key)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, deleteTimeout)
	defer cancel()
	if err := bs.client.Bucket(bs.bucket).Object(k).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil
		}
		return fmt.Errorf("failed to delete GCS object %q in bucket %q: %w", k, bs.bucket, err)
	}
	return nil
}

// URL prefers the CDN, then the emulator media endpoint, then the public base.
func (bs *BucketStore) URL(key string) string {
	k, err := objectstore.CleanKey(key)
	if err != nil {
		return ""
	}
	if bs.cdnDomain != "" {
		return objectstore.JoinURL("https://"+bs.cdnDomain, k)
	}
	if bs.mode == objectstore.ModeGCSEmulator && bs.publicBaseURL != "" {
		return fmt.Sprintf("%s/storage/v1/b/%s/o/%s?alt=media",
			bs.publicBaseURL, url.PathEscape(bs.bucket), url.PathEscape(k))
	}
	if bs.publicBaseURL != "" {
		return objectstore.JoinURL(bs.publicBaseURL+"/"+bs.bucket, k)
	}
	return objectstore.JoinURL("https://storage.googleapis.com/"+bs.bucket, k)
}

func (bs *BucketStore) isEmulatorMode() bool {
	return bs.mode == objectstore.ModeGCSEmulator && bs.emulatorHost != ""
}

func (bs *BucketStore) emulatorObjectMediaURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/b/%s/o/%s?alt=media",
		bs.emulatorHost, url.PathEscape(bs.bucket), url.PathEscape(key))
}

type readCloserWithCancel struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (r *readCloserWithCancel) Close() error {
	err := r.ReadCloser.Close()
	if r.cancel != nil {
		r.cancel()
	}
	return err
}
