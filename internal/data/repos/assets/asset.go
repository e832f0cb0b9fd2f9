package assets

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/yungbote/assetdesk-backend/internal/domain/assets"
	"github.com/yungbote/assetdesk-backend/internal/platform/dbctx"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
)

const createBatchSize = 100

// ErrUploadedFileClaimed reports an insert that lost the race for an
// uploaded file another asset already holds.
var ErrUploadedFileClaimed = errors.New("uploaded file already attached to an asset")

type ListScope string

const (
	ScopeAll         ListScope = "all"
	ScopeUnused      ListScope = "unused"
	ScopeTranscoding ListScope = "transcoding"
	ScopeExplorer    ListScope = "explorer"
)

// ListQuery selects one page of a listing. ParentID only applies to ScopeExplorer;
// nil lists the root level.
type ListQuery struct {
	Scope    ListScope
	ParentID *uuid.UUID
	Filter   AssetFilter
	Page     PageRequest
}

type AssetRepo interface {
	Create(dbc dbctx.Context, rows []*domain.Asset) ([]*domain.Asset, error)

	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Asset, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Asset, error)
	GetFolderByID(dbc dbctx.Context, id uuid.UUID) (*domain.Asset, error)
	GetDetail(dbc dbctx.Context, id uuid.UUID, category domain.Category) (*domain.Asset, error)
	GetByUploadedFileIDs(dbc dbctx.Context, fileIDs []uuid.UUID) ([]*domain.Asset, error)

	List(dbc dbctx.Context, q ListQuery) (*Page[*domain.Asset], error)

	UpdateStatus(dbc dbctx.Context, id uuid.UUID, status domain.Status) error
}

type assetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
	return &assetRepo{db: db, log: baseLog.With("repo", "AssetRepo")}
}

func (r *assetRepo) Create(dbc dbctx.Context, rows []*domain.Asset) ([]*domain.Asset, error) {
	if len(rows) == 0 {
		return []*domain.Asset{}, nil
	}
	if err := dbc.Conn(r.db).CreateInBatches(&rows, createBatchSize).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUploadedFileClaimed
		}
		return nil, err
	}
	return rows, nil
}

func (r *assetRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Asset, error) {
	var out []*domain.Asset
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *assetRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Asset, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *assetRepo) GetFolderByID(dbc dbctx.Context, id uuid.UUID) (*domain.Asset, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.Asset
	if err := dbc.Conn(r.db).
		Where("id = ? AND category = ?", id, domain.CategoryFolder).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

// GetDetail loads one asset of the given category with its file, parent and contents.
func (r *assetRepo) GetDetail(dbc dbctx.Context, id uuid.UUID, category domain.Category) (*domain.Asset, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.Asset
	if err := dbc.Conn(r.db).
		Preload("UploadedFile").
		Preload("Parent").
		Preload("Contents", func(db *gorm.DB) *gorm.DB { return db.Order("content.title ASC") }).
		Where("id = ? AND category = ?", id, category).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *assetRepo) GetByUploadedFileIDs(dbc dbctx.Context, fileIDs []uuid.UUID) ([]*domain.Asset, error) {
	var out []*domain.Asset
	if len(fileIDs) == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).Where("uploaded_file_id IN ?", fileIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *assetRepo) List(dbc dbctx.Context, q ListQuery) (*Page[*domain.Asset], error) {
	scoped := func() (*gorm.DB, error) {
		base := dbc.Conn(r.db).Model(&domain.Asset{})
		switch q.Scope {
		case "", ScopeAll:
		case ScopeUnused:
			base = base.Where("NOT EXISTS (SELECT 1 FROM content_assets ca WHERE ca.asset_id = asset.id)")
		case ScopeTranscoding:
			base = base.
				Where("asset.status IN ?", domain.TranscodingStatuses).
				Where("asset.category IN ?", domain.TranscodableCategories)
		case ScopeExplorer:
			if q.ParentID == nil {
				base = base.Where("asset.parent_id IS NULL")
			} else {
				base = base.Where("asset.parent_id = ?", *q.ParentID)
			}
		default:
			return nil, fmt.Errorf("unknown list scope %q", q.Scope)
		}
		return q.Filter.Apply(base), nil
	}

	countQ, err := scoped()
	if err != nil {
		return nil, err
	}
	var total int64
	if err := countQ.Count(&total).Error; err != nil {
		return nil, err
	}

	number, size, numPages, err := q.Page.resolve(total)
	if err != nil {
		return nil, err
	}

	rowsQ, err := scoped()
	if err != nil {
		return nil, err
	}
	if q.Scope == ScopeExplorer {
		rowsQ = rowsQ.Order("CASE WHEN asset.category = '" + string(domain.CategoryFolder) + "' THEN 0 ELSE 1 END ASC")
	}
	items := []*domain.Asset{}
	if err := rowsQ.
		Preload("UploadedFile").
		Order("asset.created_at DESC").
		Order("asset.id ASC").
		Offset((number - 1) * size).
		Limit(size).
		Find(&items).Error; err != nil {
		return nil, err
	}

	return &Page[*domain.Asset]{
		Items:    items,
		Number:   number,
		Size:     size,
		Total:    total,
		NumPages: numPages,
	}, nil
}

func (r *assetRepo) UpdateStatus(dbc dbctx.Context, id uuid.UUID, status domain.Status) error {
	return dbc.Conn(r.db).
		Model(&domain.Asset{}).
		Where("id = ?", id).
		Update("status", status).Error
}
