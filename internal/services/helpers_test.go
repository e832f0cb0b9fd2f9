package services

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"gorm.io/gorm"

	"github.com/yungbote/assetdesk-backend/internal/data/db"
	"github.com/yungbote/assetdesk-backend/internal/data/repos"
	"github.com/yungbote/assetdesk-backend/internal/data/repos/testutil"
	"github.com/yungbote/assetdesk-backend/internal/platform/apierr"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
	"github.com/yungbote/assetdesk-backend/internal/platform/objectstore"
)

type harness struct {
	ctx   context.Context
	log   *logger.Logger
	db    *gorm.DB
	fs    afero.Fs
	store objectstore.Store

	assetRepo    repos.AssetRepo
	uploadedRepo repos.UploadedFileRepo
	contentRepo  repos.ContentRepo
	imageRepo    repos.ContentImageRepo
	userRepo     repos.UserRepo
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	log := testutil.Logger(t)
	conn := testutil.DB(t)
	fs := afero.NewMemMapFs()
	return &harness{
		ctx:          context.Background(),
		log:          log,
		db:           conn,
		fs:           fs,
		store:        objectstore.NewLocalStore(log, fs, "/media"),
		assetRepo:    repos.NewAssetRepo(conn, log),
		uploadedRepo: repos.NewUploadedFileRepo(conn, log),
		contentRepo:  repos.NewContentRepo(conn, log),
		imageRepo:    repos.NewContentImageRepo(conn, log),
		userRepo:     repos.NewUserRepo(conn, log),
	}
}

func (h *harness) assets() AssetService {
	return NewAssetService(h.log, db.NewGormTxRunner(h.db), h.assetRepo, h.uploadedRepo)
}

// storedKeys lists every object currently held by the in-memory store.
func (h *harness) storedKeys(t *testing.T) []string {
	t.Helper()
	var keys []string
	err := afero.Walk(h.fs, "", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			keys = append(keys, strings.TrimLeft(filepath.ToSlash(p), "/"))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk store: %v", err)
	}
	sort.Strings(keys)
	return keys
}

func wantAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("want api error %d/%s got nil", status, code)
	}
	if got := apierr.StatusOf(err); got != status {
		t.Fatalf("status: want=%d got=%d (%v)", status, got, err)
	}
	if got := apierr.CodeOf(err); got != code {
		t.Fatalf("code: want=%q got=%q (%v)", code, got, err)
	}
}
