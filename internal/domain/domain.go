package domain

import (
	"github.com/yungbote/assetdesk-backend/internal/domain/assets"
	"github.com/yungbote/assetdesk-backend/internal/domain/auth"
)

type (
	Asset        = assets.Asset
	UploadedFile = assets.UploadedFile
	Content      = assets.Content
	ContentImage = assets.ContentImage

	AssetCategory = assets.Category
	AssetStatus   = assets.Status
	FileType      = assets.FileType
	ImageType     = assets.ImageType

	User       = auth.User
	Permission = auth.Permission
)

// Models lists every table owned by the service in migration order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&UploadedFile{},
		&Asset{},
		&Content{},
		&ContentImage{},
	}
}
