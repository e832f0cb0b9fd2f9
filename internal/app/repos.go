package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/assetdesk-backend/internal/data/repos"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
)

type Repos struct {
	Asset        repos.AssetRepo
	UploadedFile repos.UploadedFileRepo
	Content      repos.ContentRepo
	ContentImage repos.ContentImageRepo
	User         repos.UserRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Asset:        repos.NewAssetRepo(db, log),
		UploadedFile: repos.NewUploadedFileRepo(db, log),
		Content:      repos.NewContentRepo(db, log),
		ContentImage: repos.NewContentImageRepo(db, log),
		User:         repos.NewUserRepo(db, log),
	}
}
