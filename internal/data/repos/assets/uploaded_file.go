package assets

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/yungbote/assetdesk-backend/internal/domain/assets"
	"github.com/yungbote/assetdesk-backend/internal/platform/dbctx"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
)

type UploadedFileRepo interface {
	Create(dbc dbctx.Context, row *domain.UploadedFile) (*domain.UploadedFile, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.UploadedFile, error)
	GetByIDAndType(dbc dbctx.Context, id uuid.UUID, fileType domain.FileType) (*domain.UploadedFile, error)
}

type uploadedFileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUploadedFileRepo(db *gorm.DB, baseLog *logger.Logger) UploadedFileRepo {
	return &uploadedFileRepo{db: db, log: baseLog.With("repo", "UploadedFileRepo")}
}

func (r *uploadedFileRepo) Create(dbc dbctx.Context, row *domain.UploadedFile) (*domain.UploadedFile, error) {
	if err := dbc.Conn(r.db).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *uploadedFileRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.UploadedFile, error) {
	var out []*domain.UploadedFile
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *uploadedFileRepo) GetByIDAndType(dbc dbctx.Context, id uuid.UUID, fileType domain.FileType) (*domain.UploadedFile, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.UploadedFile
	if err := dbc.Conn(r.db).
		Where("id = ? AND file_type = ?", id, fileType).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}
