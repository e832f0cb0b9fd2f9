package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/assetdesk-backend/internal/data/db"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
	"github.com/yungbote/assetdesk-backend/internal/platform/objectstore"
	"github.com/yungbote/assetdesk-backend/internal/services"
)

type Services struct {
	Tokens        services.TokenService
	Auth          services.AuthService
	Authorizer    services.Authorizer
	Assets        services.AssetService
	ContentImages services.ContentImageService
	Uploads       services.FileUploadService
	Presenter     *services.Presenter
}

func wireServices(conn *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, store objectstore.Store) (Services, error) {
	log.Info("Wiring services...")

	tokens, err := services.NewTokenService(log, cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AccessTTL)
	if err != nil {
		return Services{}, fmt.Errorf("init token service: %w", err)
	}
	policy, err := services.LoadPolicy(cfg.Auth.PolicyFile)
	if err != nil {
		return Services{}, err
	}

	return Services{
		Tokens:        tokens,
		Auth:          services.NewAuthService(log, reposet.User, tokens),
		Authorizer:    services.NewAuthorizer(log, reposet.User, policy),
		Assets:        services.NewAssetService(log, db.NewGormTxRunner(conn), reposet.Asset, reposet.UploadedFile),
		ContentImages: services.NewContentImageService(log, reposet.Content, reposet.ContentImage, store),
		Uploads:       services.NewFileUploadService(log, reposet.UploadedFile, store),
		Presenter:     services.NewPresenter(store),
	}, nil
}
