package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	assetrepo "github.com/yungbote/assetdesk-backend/internal/data/repos/assets"
	"github.com/yungbote/assetdesk-backend/internal/domain/assets"
	"github.com/yungbote/assetdesk-backend/internal/platform/objectstore"
)

// SerializedModel mirrors the {model, pk, fields} envelope consumed by the upload UI.
type SerializedModel struct {
	Model  string      `json:"model"`
	PK     uuid.UUID   `json:"pk"`
	Fields interface{} `json:"fields"`
}

type serializedAssetFields struct {
	Title        string         `json:"title"`
	Category     string         `json:"category"`
	Status       string         `json:"status"`
	Parent       *uuid.UUID     `json:"parent"`
	UploadedFile *uuid.UUID     `json:"uploaded_file"`
	CreatedBy    *uuid.UUID     `json:"created_by"`
	Metadata     datatypes.JSON `json:"metadata"`
	Created      time.Time      `json:"created"`
	Modified     time.Time      `json:"modified"`
}

func SerializeAssets(rows []*assets.Asset) []SerializedModel {
	out := make([]SerializedModel, 0, len(rows))
	for _, a := range rows {
		out = append(out, SerializedModel{
			Model: "app.asset",
			PK:    a.ID,
			Fields: serializedAssetFields{
				Title:        a.Title,
				Category:     string(a.Category),
				Status:       string(a.Status),
				Parent:       a.ParentID,
				UploadedFile: a.UploadedFileID,
				CreatedBy:    a.CreatedByID,
				Metadata:     a.Metadata,
				Created:      a.CreatedAt,
				Modified:     a.UpdatedAt,
			},
		})
	}
	return out
}

type UploadedFileView struct {
	ID           uuid.UUID `json:"id"`
	URL          string    `json:"url"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	FileType     string    `json:"file_type"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}

type ContentRef struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type AssetView struct {
	ID            uuid.UUID         `json:"id"`
	Title         string            `json:"title"`
	Category      string            `json:"category"`
	CategoryLabel string            `json:"category_label"`
	Status        string            `json:"status"`
	StatusLabel   string            `json:"status_label"`
	ParentID      *uuid.UUID        `json:"parent_id"`
	Parent        *AssetView        `json:"parent,omitempty"`
	UploadedFile  *UploadedFileView `json:"uploaded_file"`
	Contents      []ContentRef      `json:"contents,omitempty"`
	Metadata      datatypes.JSON    `json:"metadata,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type ContentImageView struct {
	ID         uuid.UUID `json:"id"`
	ContentID  uuid.UUID `json:"content_id"`
	ImageType  string    `json:"image_type"`
	ImageLabel string    `json:"image_type_label"`
	ImageURL   string    `json:"image_url,omitempty"`
}

// Presenter turns models into response views with resolved storage URLs.
type Presenter struct {
	store objectstore.Store
}

func NewPresenter(store objectstore.Store) *Presenter { return &Presenter{store: store} }

func (p *Presenter) URL(key string) string {
	if key == "" || p == nil || p.store == nil {
		return ""
	}
	return p.store.URL(key)
}

func (p *Presenter) UploadedFile(f *assets.UploadedFile) *UploadedFileView {
	if f == nil {
		return nil
	}
	return &UploadedFileView{
		ID:           f.ID,
		URL:          p.URL(f.StorageKey),
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		FileType:     string(f.FileType),
		SizeBytes:    f.SizeBytes,
		CreatedAt:    f.CreatedAt,
	}
}

func (p *Presenter) Asset(a *assets.Asset) *AssetView {
	if a == nil {
		return nil
	}
	v := &AssetView{
		ID:            a.ID,
		Title:         a.Title,
		Category:      string(a.Category),
		CategoryLabel: a.Category.Label(),
		Status:        string(a.Status),
		StatusLabel:   a.Status.Label(),
		ParentID:      a.ParentID,
		Parent:        p.Asset(a.Parent),
		UploadedFile:  p.UploadedFile(a.UploadedFile),
		Metadata:      a.Metadata,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	for _, c := range a.Contents {
		v.Contents = append(v.Contents, ContentRef{ID: c.ID, Title: c.Title})
	}
	return v
}

func (p *Presenter) Assets(rows []*assets.Asset) []*AssetView {
	out := make([]*AssetView, 0, len(rows))
	for _, a := range rows {
		out = append(out, p.Asset(a))
	}
	return out
}

func (p *Presenter) ContentImage(ci *assets.ContentImage) *ContentImageView {
	if ci == nil {
		return nil
	}
	return &ContentImageView{
		ID:         ci.ID,
		ContentID:  ci.ContentID,
		ImageType:  string(ci.ImageType),
		ImageLabel: ci.ImageType.Label(),
		ImageURL:   p.URL(ci.ImageKey),
	}
}

// ListingView is the JSON page envelope for asset listings.
type ListingView struct {
	Items        []*AssetView           `json:"items"`
	Page         int                    `json:"page"`
	PageSize     int                    `json:"page_size"`
	Total        int64                  `json:"total"`
	NumPages     int                    `json:"num_pages"`
	HasNext      bool                   `json:"has_next"`
	HasPrevious  bool                   `json:"has_previous"`
	FilterErrors assetrepo.FilterErrors `json:"filter_errors,omitempty"`
	Parent       *AssetView             `json:"parent,omitempty"`
}

func (p *Presenter) Listing(l *AssetListing) *ListingView {
	if l == nil || l.Page == nil {
		return nil
	}
	return &ListingView{
		Items:        p.Assets(l.Page.Items),
		Page:         l.Page.Number,
		PageSize:     l.Page.Size,
		Total:        l.Page.Total,
		NumPages:     l.Page.NumPages,
		HasNext:      l.Page.HasNext(),
		HasPrevious:  l.Page.HasPrevious(),
		FilterErrors: l.FilterErrors,
		Parent:       p.Asset(l.Parent),
	}
}
