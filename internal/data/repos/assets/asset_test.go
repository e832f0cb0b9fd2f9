package assets

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/assetdesk-backend/internal/data/repos/testutil"
	domain "github.com/yungbote/assetdesk-backend/internal/domain/assets"
	"github.com/yungbote/assetdesk-backend/internal/platform/dbctx"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func day(n int) testutil.AssetOpt { return testutil.CreatedAt(base.AddDate(0, 0, n)) }

func titles(p *Page[*domain.Asset]) []string {
	out := make([]string, 0, len(p.Items))
	for _, a := range p.Items {
		out = append(out, a.Title)
	}
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAssetRepoListScopes(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewAssetRepo(db, testutil.Logger(t))

	folder := testutil.SeedAsset(t, ctx, tx, "Season 1", domain.CategoryFolder, day(0))
	testutil.SeedAsset(t, ctx, tx, "Intro", domain.CategoryVideo, day(1), testutil.WithStatus(domain.StatusQueued))
	testutil.SeedAsset(t, ctx, tx, "Theme", domain.CategoryAudio, day(2), testutil.WithStatus(domain.StatusError))
	testutil.SeedAsset(t, ctx, tx, "Manual", domain.CategoryDocument, day(3), testutil.WithStatus(domain.StatusQueued))
	live := testutil.SeedAsset(t, ctx, tx, "Live", domain.CategoryLiveStream, day(4), testutil.WithStatus(domain.StatusTranscoding))
	testutil.SeedAsset(t, ctx, tx, "Episode 1", domain.CategoryVideo, day(5), testutil.WithParent(folder.ID))
	subfolder := testutil.SeedAsset(t, ctx, tx, "Extras", domain.CategoryFolder, day(6), testutil.WithParent(folder.ID))

	content := testutil.SeedContent(t, ctx, tx, "Show")
	testutil.LinkContent(t, ctx, tx, content.ID, live.ID)

	first := PageRequest{Number: 1, Size: DefaultPageSize}

	all, err := repo.List(dbc, ListQuery{Scope: ScopeAll, Page: first})
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if all.Total != 7 || all.Items[0].Title != "Extras" {
		t.Fatalf("List all: total=%d titles=%v", all.Total, titles(all))
	}

	unused, err := repo.List(dbc, ListQuery{Scope: ScopeUnused, Page: first})
	if err != nil {
		t.Fatalf("List unused: %v", err)
	}
	if unused.Total != 6 {
		t.Fatalf("List unused: total=%d", unused.Total)
	}
	for _, a := range unused.Items {
		if a.ID == live.ID {
			t.Fatalf("linked asset should not be unused")
		}
	}

	tr, err := repo.List(dbc, ListQuery{Scope: ScopeTranscoding, Page: first})
	if err != nil {
		t.Fatalf("List transcoding: %v", err)
	}
	if want := []string{"Live", "Theme", "Intro"}; !sameStrings(titles(tr), want) {
		t.Fatalf("List transcoding: want=%v got=%v", want, titles(tr))
	}

	root, err := repo.List(dbc, ListQuery{Scope: ScopeExplorer, Page: first})
	if err != nil {
		t.Fatalf("List explorer root: %v", err)
	}
	if want := []string{"Season 1", "Live", "Manual", "Theme", "Intro"}; !sameStrings(titles(root), want) {
		t.Fatalf("explorer root: want=%v got=%v", want, titles(root))
	}

	children, err := repo.List(dbc, ListQuery{Scope: ScopeExplorer, ParentID: &folder.ID, Page: first})
	if err != nil {
		t.Fatalf("List explorer children: %v", err)
	}
	if want := []string{"Extras", "Episode 1"}; !sameStrings(titles(children), want) {
		t.Fatalf("explorer children: want=%v got=%v", want, titles(children))
	}
	if children.Items[0].ID != subfolder.ID {
		t.Fatalf("folders should sort first")
	}
}

func TestAssetRepoListFilterAndPaging(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewAssetRepo(db, testutil.Logger(t))

	file := testutil.SeedUploadedFile(t, ctx, tx, "uploads/clip.mp4", domain.FileTypeVideo)
	for i := 0; i < 45; i++ {
		testutil.SeedAsset(t, ctx, tx, "Clip", domain.CategoryVideo, day(i))
	}
	testutil.SeedAsset(t, ctx, tx, "100% Pure_Sound", domain.CategoryAudio, day(50), testutil.WithFile(file.ID))

	last, err := repo.List(dbc, ListQuery{Scope: ScopeAll, Page: PageRequest{Last: true, Size: DefaultPageSize}})
	if err != nil {
		t.Fatalf("List last: %v", err)
	}
	if last.Number != 3 || last.NumPages != 3 || len(last.Items) != 6 || last.HasNext() || !last.HasPrevious() {
		t.Fatalf("last page: number=%d pages=%d len=%d", last.Number, last.NumPages, len(last.Items))
	}

	if _, err := repo.List(dbc, ListQuery{Scope: ScopeAll, Page: PageRequest{Number: 4, Size: DefaultPageSize}}); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("page past end: want ErrPageNotFound got=%v", err)
	}

	f, ferrs := ParseAssetFilter(url.Values{"title": {"pure_"}, "has_file": {"true"}})
	if ferrs != nil {
		t.Fatalf("ParseAssetFilter: %v", ferrs)
	}
	got, err := repo.List(dbc, ListQuery{Scope: ScopeAll, Filter: f, Page: PageRequest{Number: 1}})
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if got.Total != 1 || got.Items[0].UploadedFile == nil || got.Items[0].UploadedFile.ID != file.ID {
		t.Fatalf("filtered: total=%d items=%v", got.Total, titles(got))
	}

	f, _ = ParseAssetFilter(url.Values{"title": {"%"}})
	got, err = repo.List(dbc, ListQuery{Scope: ScopeAll, Filter: f, Page: PageRequest{Number: 1}})
	if err != nil || got.Total != 1 {
		t.Fatalf("literal %% filter: total=%d err=%v", got.Total, err)
	}

	f, _ = ParseAssetFilter(url.Values{"created_before": {"2026-03-02"}, "category": {"video"}})
	got, err = repo.List(dbc, ListQuery{Scope: ScopeAll, Filter: f, Page: PageRequest{Number: 1}})
	if err != nil || got.Total != 2 {
		t.Fatalf("created_before: total=%d err=%v", got.Total, err)
	}

	empty, err := repo.List(dbc, ListQuery{Scope: ScopeExplorer, ParentID: ptr(uuid.New()), Page: PageRequest{Number: 1}})
	if err != nil || empty.Total != 0 || empty.Number != 1 || len(empty.Items) != 0 {
		t.Fatalf("empty listing should still have page 1: %+v err=%v", empty, err)
	}
}

func TestAssetRepoCreateDetailAndStatus(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewAssetRepo(db, testutil.Logger(t))

	folder := testutil.SeedAsset(t, ctx, tx, "Books", domain.CategoryFolder)
	file := testutil.SeedUploadedFile(t, ctx, tx, "uploads/book.epub", domain.FileTypeDocument)

	rows, err := repo.Create(dbc, []*domain.Asset{
		{Title: "Novel", Category: domain.CategoryEbook, Status: domain.StatusUploaded, ParentID: &folder.ID, UploadedFileID: &file.ID},
		{Title: "Notes", Category: domain.CategoryDocument, Status: domain.StatusReady},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(rows) != 2 || rows[0].ID == uuid.Nil || rows[1].ID == uuid.Nil {
		t.Fatalf("Create: ids not assigned: %+v", rows)
	}

	content := testutil.SeedContent(t, ctx, tx, "Reading list")
	testutil.LinkContent(t, ctx, tx, content.ID, rows[0].ID)

	got, err := repo.GetDetail(dbc, rows[0].ID, domain.CategoryEbook)
	if err != nil || got == nil {
		t.Fatalf("GetDetail: got=%v err=%v", got, err)
	}
	if got.UploadedFile == nil || got.Parent == nil || got.Parent.ID != folder.ID || len(got.Contents) != 1 {
		t.Fatalf("GetDetail preloads missing: %+v", got)
	}
	if wrong, err := repo.GetDetail(dbc, rows[0].ID, domain.CategoryVideo); err != nil || wrong != nil {
		t.Fatalf("GetDetail wrong category: got=%v err=%v", wrong, err)
	}

	if f, err := repo.GetFolderByID(dbc, folder.ID); err != nil || f == nil {
		t.Fatalf("GetFolderByID: got=%v err=%v", f, err)
	}
	if f, err := repo.GetFolderByID(dbc, rows[1].ID); err != nil || f != nil {
		t.Fatalf("GetFolderByID non-folder: got=%v err=%v", f, err)
	}

	if err := repo.UpdateStatus(dbc, rows[1].ID, domain.StatusError); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if a, err := repo.GetByID(dbc, rows[1].ID); err != nil || a == nil || a.Status != domain.StatusError {
		t.Fatalf("UpdateStatus verify: got=%v err=%v", a, err)
	}
	if a, err := repo.GetByID(dbc, uuid.New()); err != nil || a != nil {
		t.Fatalf("GetByID missing: got=%v err=%v", a, err)
	}
}

func ptr[T any](v T) *T { return &v }

func TestAssetRepoCreateReportsClaimedFile(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewAssetRepo(db, testutil.Logger(t))

	file := testutil.SeedUploadedFile(t, ctx, db, "uploads/clip.mp4", domain.FileTypeVideo)
	testutil.SeedAsset(t, ctx, db, "Owner", domain.CategoryVideo, testutil.WithFile(file.ID))

	_, err := repo.Create(dbc, []*domain.Asset{
		{Title: "Second owner", Category: domain.CategoryVideo, Status: domain.StatusUploaded, UploadedFileID: &file.ID},
	})
	if !errors.Is(err, ErrUploadedFileClaimed) {
		t.Fatalf("want ErrUploadedFileClaimed, got=%v", err)
	}
}
