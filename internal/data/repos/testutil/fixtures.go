package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/assetdesk-backend/internal/domain/assets"
	"github.com/yungbote/assetdesk-backend/internal/domain/auth"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email, role string) *auth.User {
	tb.Helper()
	u := &auth.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "x",
		Role:         role,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

type AssetOpt func(*assets.Asset)

func WithParent(id uuid.UUID) AssetOpt {
	return func(a *assets.Asset) { a.ParentID = &id }
}

func WithStatus(s assets.Status) AssetOpt {
	return func(a *assets.Asset) { a.Status = s }
}

func WithFile(id uuid.UUID) AssetOpt {
	return func(a *assets.Asset) { a.UploadedFileID = &id }
}

func CreatedAt(t time.Time) AssetOpt {
	return func(a *assets.Asset) { a.CreatedAt = t }
}

func SeedAsset(tb testing.TB, ctx context.Context, tx *gorm.DB, title string, category assets.Category, opts ...AssetOpt) *assets.Asset {
	tb.Helper()
	a := &assets.Asset{
		ID:       uuid.New(),
		Title:    title,
		Category: category,
		Status:   assets.DefaultStatus(category),
	}
	for _, opt := range opts {
		opt(a)
	}
	if err := tx.WithContext(ctx).Omit("Contents").Create(a).Error; err != nil {
		tb.Fatalf("seed asset: %v", err)
	}
	return a
}

func SeedUploadedFile(tb testing.TB, ctx context.Context, tx *gorm.DB, key string, fileType assets.FileType) *assets.UploadedFile {
	tb.Helper()
	f := &assets.UploadedFile{
		ID:           uuid.New(),
		StorageKey:   key,
		OriginalName: key,
		MimeType:     "application/octet-stream",
		SizeBytes:    1,
		FileType:     fileType,
	}
	if err := tx.WithContext(ctx).Create(f).Error; err != nil {
		tb.Fatalf("seed uploaded file: %v", err)
	}
	return f
}

func SeedContent(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *assets.Content {
	tb.Helper()
	c := &assets.Content{ID: uuid.New(), Title: title}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed content: %v", err)
	}
	return c
}

func LinkContent(tb testing.TB, ctx context.Context, tx *gorm.DB, contentID, assetID uuid.UUID) {
	tb.Helper()
	row := map[string]interface{}{"content_id": contentID, "asset_id": assetID}
	if err := tx.WithContext(ctx).Table("content_assets").Create(row).Error; err != nil {
		tb.Fatalf("link content: %v", err)
	}
}
