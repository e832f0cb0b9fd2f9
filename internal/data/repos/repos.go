package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/assetdesk-backend/internal/data/repos/assets"
	"github.com/yungbote/assetdesk-backend/internal/data/repos/auth"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
)

type AssetRepo = assets.AssetRepo
type UploadedFileRepo = assets.UploadedFileRepo
type ContentRepo = assets.ContentRepo
type ContentImageRepo = assets.ContentImageRepo

type UserRepo = auth.UserRepo

func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
	return assets.NewAssetRepo(db, baseLog)
}
func NewUploadedFileRepo(db *gorm.DB, baseLog *logger.Logger) UploadedFileRepo {
	return assets.NewUploadedFileRepo(db, baseLog)
}
func NewContentRepo(db *gorm.DB, baseLog *logger.Logger) ContentRepo {
	return assets.NewContentRepo(db, baseLog)
}
func NewContentImageRepo(db *gorm.DB, baseLog *logger.Logger) ContentImageRepo {
	return assets.NewContentImageRepo(db, baseLog)
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return auth.NewUserRepo(db, baseLog) }
