package assets

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/yungbote/assetdesk-backend/internal/domain/assets"
	"github.com/yungbote/assetdesk-backend/internal/platform/dbctx"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
)

type ContentImageRepo interface {
	Create(dbc dbctx.Context, row *domain.ContentImage) (*domain.ContentImage, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.ContentImage, error)
	Update(dbc dbctx.Context, row *domain.ContentImage) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type contentImageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentImageRepo(db *gorm.DB, baseLog *logger.Logger) ContentImageRepo {
	return &contentImageRepo{db: db, log: baseLog.With("repo", "ContentImageRepo")}
}

func (r *contentImageRepo) Create(dbc dbctx.Context, row *domain.ContentImage) (*domain.ContentImage, error) {
	if err := dbc.Conn(r.db).Omit("Content").Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *contentImageRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.ContentImage, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.ContentImage
	if err := dbc.Conn(r.db).
		Preload("Content").
		Where("id = ?", id).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *contentImageRepo) Update(dbc dbctx.Context, row *domain.ContentImage) error {
	return dbc.Conn(r.db).
		Model(&domain.ContentImage{}).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{
			"image_type": row.ImageType,
			"image_key":  row.ImageKey,
		}).Error
}

func (r *contentImageRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return dbc.Conn(r.db).Where("id = ?", id).Delete(&domain.ContentImage{}).Error
}
