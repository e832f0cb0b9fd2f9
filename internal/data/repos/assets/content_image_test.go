package assets

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/assetdesk-backend/internal/data/repos/testutil"
	domain "github.com/yungbote/assetdesk-backend/internal/domain/assets"
	"github.com/yungbote/assetdesk-backend/internal/platform/dbctx"
)

func TestContentAndImageRepos(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	log := testutil.Logger(t)

	contents := NewContentRepo(db, log)
	images := NewContentImageRepo(db, log)
	assetRepo := NewAssetRepo(db, log)

	c := testutil.SeedContent(t, ctx, db, "Movie")
	if missing, err := contents.GetByID(dbc, uuid.New()); err != nil || missing != nil {
		t.Fatalf("unknown content: got=%v err=%v", missing, err)
	}

	a := testutil.SeedAsset(t, ctx, db, "Trailer", domain.CategoryVideo)
	testutil.LinkContent(t, ctx, db, c.ID, a.ID)
	unused, err := assetRepo.List(dbc, ListQuery{Scope: ScopeUnused, Page: PageRequest{Number: 1}})
	if err != nil || unused.Total != 0 {
		t.Fatalf("attached asset still unused: total=%d err=%v", unused.Total, err)
	}

	img, err := images.Create(dbc, &domain.ContentImage{ContentID: c.ID, ImageType: domain.ImageTypePoster, ImageKey: "content-images/p.png"})
	if err != nil {
		t.Fatalf("Create image: %v", err)
	}

	got, err := images.GetByID(dbc, img.ID)
	if err != nil || got == nil || got.Content == nil || got.Content.ID != c.ID {
		t.Fatalf("GetByID: got=%+v err=%v", got, err)
	}

	got.ImageType = domain.ImageTypeBanner
	got.ImageKey = ""
	if err := images.Update(dbc, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	withImages, err := contents.GetByID(dbc, c.ID)
	if err != nil || withImages == nil || len(withImages.Images) != 1 || withImages.Images[0].ImageType != domain.ImageTypeBanner {
		t.Fatalf("content images after update: %+v err=%v", withImages, err)
	}

	if err := images.Delete(dbc, img.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gone, err := images.GetByID(dbc, img.ID); err != nil || gone != nil {
		t.Fatalf("after delete: got=%v err=%v", gone, err)
	}
}

func TestUploadedFileRepo(t *testing.T) {
	db := testutil.DB(t)
	dbc := dbctx.Context{Ctx: context.Background()}
	repo := NewUploadedFileRepo(db, testutil.Logger(t))

	f, err := repo.Create(dbc, &domain.UploadedFile{
		StorageKey:   "uploads/2026/10/book.pdf",
		OriginalName: "book.pdf",
		MimeType:     "application/pdf",
		SizeBytes:    42,
		FileType:     domain.FileTypeDocument,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got, err := repo.GetByIDAndType(dbc, f.ID, domain.FileTypeDocument); err != nil || got == nil {
		t.Fatalf("GetByIDAndType: got=%v err=%v", got, err)
	}
	if got, err := repo.GetByIDAndType(dbc, f.ID, domain.FileTypeVideo); err != nil || got != nil {
		t.Fatalf("GetByIDAndType wrong type: got=%v err=%v", got, err)
	}
	rows, err := repo.GetByIDs(dbc, []uuid.UUID{f.ID, uuid.New()})
	if err != nil || len(rows) != 1 || rows[0].StorageKey != "uploads/2026/10/book.pdf" {
		t.Fatalf("GetByIDs: rows=%v err=%v", rows, err)
	}
}
