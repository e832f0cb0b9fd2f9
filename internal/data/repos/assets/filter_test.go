package assets

import (
	"errors"
	"net/url"
	"testing"
	"time"

	domain "github.com/yungbote/assetdesk-backend/internal/domain/assets"
)

func TestParseAssetFilter(t *testing.T) {
	f, errs := ParseAssetFilter(url.Values{
		"category":      {"video", "AUDIO,ebook"},
		"status":        {"READY"},
		"title":         {"  intro "},
		"created_after": {"2026-01-02T03:04:05Z"},
		"has_file":      {"false"},
	})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(f.Categories) != 3 || f.Categories[2] != domain.CategoryEbook {
		t.Fatalf("categories: %v", f.Categories)
	}
	if len(f.Statuses) != 1 || f.Title != "intro" {
		t.Fatalf("statuses=%v title=%q", f.Statuses, f.Title)
	}
	if f.CreatedAfter == nil || !f.CreatedAfter.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Fatalf("created_after: %v", f.CreatedAfter)
	}
	if f.HasFile == nil || *f.HasFile {
		t.Fatalf("has_file: %v", f.HasFile)
	}
}

func TestParseAssetFilterStrictErrors(t *testing.T) {
	_, errs := ParseAssetFilter(url.Values{
		"category":       {"PODCAST"},
		"created_before": {"yesterday"},
		"has_file":       {"maybe"},
	})
	want := []string{"category", "created_before", "has_file"}
	got := errs.Fields()
	if len(got) != len(want) {
		t.Fatalf("fields: want=%v got=%v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fields: want=%v got=%v", want, got)
		}
	}
}

func TestParsePageRequest(t *testing.T) {
	if p, err := ParsePageRequest(""); err != nil || p.Number != 1 {
		t.Fatalf("empty: %+v err=%v", p, err)
	}
	if p, err := ParsePageRequest("last"); err != nil || !p.Last {
		t.Fatalf("last: %+v err=%v", p, err)
	}
	for _, raw := range []string{"0", "-1", "abc", "1.5"} {
		if _, err := ParsePageRequest(raw); !errors.Is(err, ErrPageNotFound) {
			t.Fatalf("%q: want ErrPageNotFound got=%v", raw, err)
		}
	}
}

func TestPageResolve(t *testing.T) {
	n, size, pages, err := PageRequest{Number: 1}.resolve(0)
	if err != nil || n != 1 || size != DefaultPageSize || pages != 1 {
		t.Fatalf("empty resolve: n=%d size=%d pages=%d err=%v", n, size, pages, err)
	}
	if _, _, _, err := (PageRequest{Number: 2}).resolve(20); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("past end: %v", err)
	}
	if n, _, _, err := (PageRequest{Last: true}).resolve(41); err != nil || n != 3 {
		t.Fatalf("last: n=%d err=%v", n, err)
	}
	if p, err := EmptyPage[int](PageRequest{Last: true}); err != nil || p.Number != 1 || len(p.Items) != 0 {
		t.Fatalf("EmptyPage last: %+v err=%v", p, err)
	}
	if _, err := EmptyPage[int](PageRequest{Number: 2}); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("EmptyPage page 2: %v", err)
	}
}
