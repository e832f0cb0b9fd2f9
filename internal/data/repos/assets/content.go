package assets

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/yungbote/assetdesk-backend/internal/domain/assets"
	"github.com/yungbote/assetdesk-backend/internal/platform/dbctx"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
)

type ContentRepo interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Content, error)
}

type contentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentRepo(db *gorm.DB, baseLog *logger.Logger) ContentRepo {
	return &contentRepo{db: db, log: baseLog.With("repo", "ContentRepo")}
}

func (r *contentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Content, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.Content
	if err := dbc.Conn(r.db).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("content_image.created_at ASC") }).
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
