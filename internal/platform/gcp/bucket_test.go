package gcp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
	"github.com/yungbote/assetdesk-backend/internal/platform/objectstore"
)

func TestBucketStoreURL(t *testing.T) {
	cases := []struct {
		name string
		cfg  StorageConfig
		want string
	}{
		{
			name: "cdn wins",
			cfg:  StorageConfig{Mode: objectstore.ModeGCS, Bucket: "assets", CDNDomain: "cdn.example.com", PublicBaseURL: "https://ignored.example.com"},
			want: "https://cdn.example.com/uploads/a%20b.png",
		},
		{
			name: "public base",
			cfg:  StorageConfig{Mode: objectstore.ModeGCS, Bucket: "assets", PublicBaseURL: "https://files.example.com/"},
			want: "https://files.example.com/assets/uploads/a%20b.png",
		},
		{
			name: "gcs default",
			cfg:  StorageConfig{Mode: objectstore.ModeGCS, Bucket: "assets"},
			want: "https://storage.googleapis.com/assets/uploads/a%20b.png",
		},
		{
			name: "emulator media endpoint",
			cfg:  StorageConfig{Mode: objectstore.ModeGCSEmulator, Bucket: "assets", EmulatorHost: "http://fake-gcs:4443"},
			want: "http://fake-gcs:4443/storage/v1/b/assets/o/uploads%2Fa%20b.png?alt=media",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bs := newBucketStore(logger.Nop(), nil, tc.cfg)
			if got := bs.URL("/uploads/a b.png"); got != tc.want {
				t.Fatalf("URL: want=%q got=%q", tc.want, got)
			}
		})
	}
}

func TestBucketStoreOpenEmulator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("alt") != "media" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		switch r.URL.EscapedPath() {
		case "/storage/v1/b/assets/o/uploads%2Fdoc.pdf":
			_, _ = io.WriteString(w, "pdf-bytes")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	bs := newBucketStore(logger.Nop(), nil, StorageConfig{
		Mode:         objectstore.ModeGCSEmulator,
		Bucket:       "assets",
		EmulatorHost: srv.URL,
	})
	bs.httpClient = srv.Client()

	rc, err := bs.Open(context.Background(), "uploads/doc.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "pdf-bytes" {
		t.Fatalf("body: got=%q", body)
	}

	if _, err := bs.Open(context.Background(), "uploads/missing.pdf"); !errors.Is(err, objectstore.ErrNotFound) {
		t.Fatalf("want ErrNotFound got=%v", err)
	}
}
