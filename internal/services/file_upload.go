package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/yungbote/assetdesk-backend/internal/data/repos"
	"github.com/yungbote/assetdesk-backend/internal/domain/assets"
	"github.com/yungbote/assetdesk-backend/internal/platform/apierr"
	"github.com/yungbote/assetdesk-backend/internal/platform/dbctx"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
	"github.com/yungbote/assetdesk-backend/internal/platform/objectstore"
)

// Upload failure codes. Every failure is reported as a 500.
const (
	UploadCodeMissingFile   = "missing_file"
	UploadCodeReadFailed    = "read_failed"
	UploadCodeStorageFailed = "storage_failed"
	UploadCodePersistFailed = "persist_failed"
)

const sniffLen = 3072

type FileUploadService interface {
	Upload(ctx context.Context, filename string, r io.Reader) (*assets.UploadedFile, error)
	URL(f *assets.UploadedFile) string
}

type fileUploadService struct {
	log   *logger.Logger
	repo  repos.UploadedFileRepo
	store objectstore.Store
	now   func() time.Time
}

func NewFileUploadService(log *logger.Logger, repo repos.UploadedFileRepo, store objectstore.Store) FileUploadService {
	return &fileUploadService{
		log:   log.With("service", "FileUploadService"),
		repo:  repo,
		store: store,
		now:   time.Now,
	}
}

func MissingFileError(err error) error {
	if err == nil {
		err = errors.New("no file was submitted")
	}
	return apierr.Internal(UploadCodeMissingFile, err)
}

type countingReader struct {
	r   io.Reader
	n   int64
	err error
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	if err != nil && err != io.EOF {
		c.err = err
	}
	return n, err
}

func (s *fileUploadService) Upload(ctx context.Context, filename string, r io.Reader) (*assets.UploadedFile, error) {
	if r == nil {
		return nil, MissingFileError(nil)
	}
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, apierr.Internal(UploadCodeReadFailed, fmt.Errorf("read upload: %w", err))
	}
	head = head[:n]
	mt := mimetype.Detect(head)

	name := SanitizeFilename(filename)
	key := path.Join("uploads", s.now().UTC().Format("2006/01/02"), uuid.NewString(), name)

	body := &countingReader{r: io.MultiReader(bytes.NewReader(head), r)}
	if err := s.store.Put(ctx, key, body, mt.String()); err != nil {
		if body.err != nil {
			return nil, apierr.Internal(UploadCodeReadFailed, fmt.Errorf("read upload: %w", body.err))
		}
		return nil, apierr.Internal(UploadCodeStorageFailed, fmt.Errorf("store upload: %w", err))
	}

	row := &assets.UploadedFile{
		StorageKey:   key,
		OriginalName: name,
		MimeType:     mt.String(),
		SizeBytes:    body.n,
		FileType:     assets.FileTypeForMIME(mt.String()),
	}
	created, err := s.repo.Create(dbctx.Context{Ctx: ctx}, row)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.log.Warn("Failed to remove orphaned upload", "key", key, "error", delErr)
		}
		return nil, apierr.Internal(UploadCodePersistFailed, fmt.Errorf("save uploaded file: %w", err))
	}
	s.log.Info("File uploaded", "uploaded_file_id", created.ID, "mime", created.MimeType, "size", created.SizeBytes)
	return created, nil
}

func (s *fileUploadService) URL(f *assets.UploadedFile) string {
	if f == nil {
		return ""
	}
	return s.store.URL(f.StorageKey)
}

// SanitizeFilename keeps the base name with a conservative character set.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}
	out := strings.TrimLeft(b.String(), ".")
	if out == "" {
		return "file"
	}
	if len(out) > 200 {
		ext := path.Ext(out)
		if len(ext) > 20 {
			ext = ""
		}
		cut := 200 - len(ext)
		for cut > 0 && !utf8.RuneStart(out[cut]) {
			cut--
		}
		out = out[:cut] + ext
	}
	return out
}
