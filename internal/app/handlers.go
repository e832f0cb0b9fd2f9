package app

import (
	"gorm.io/gorm"

	httpserver "github.com/yungbote/assetdesk-backend/internal/http"
	httpH "github.com/yungbote/assetdesk-backend/internal/http/handlers"
	httpMW "github.com/yungbote/assetdesk-backend/internal/http/middleware"
	"github.com/yungbote/assetdesk-backend/internal/http/templates"
	"github.com/yungbote/assetdesk-backend/internal/platform/flash"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
	"github.com/yungbote/assetdesk-backend/internal/platform/objectstore"
)

type Handlers struct {
	Health       *httpH.HealthHandler
	Auth         *httpH.AuthHandler
	Asset        *httpH.AssetHandler
	ContentImage *httpH.ContentImageHandler
	Upload       *httpH.UploadHandler
	Message      *httpH.MessageHandler
	Media        *httpH.MediaHandler
}

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireHandlers(log *logger.Logger, conn *gorm.DB, svc Services, fl flash.Store, store objectstore.Store) Handlers {
	log.Info("Wiring handlers...")
	pages := httpH.NewPages(log, fl)
	return Handlers{
		Health:       httpH.NewHealthHandler(conn),
		Auth:         httpH.NewAuthHandler(svc.Auth, pages),
		Asset:        httpH.NewAssetHandler(log, svc.Assets, svc.Presenter, pages),
		ContentImage: httpH.NewContentImageHandler(log, svc.ContentImages, svc.Presenter, fl),
		Upload:       httpH.NewUploadHandler(log, svc.Uploads),
		Message:      httpH.NewMessageHandler(fl),
		Media:        httpH.NewMediaHandler(store),
	}
}

func wireMiddleware(log *logger.Logger, svc Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, svc.Auth, svc.Authorizer),
	}
}

func wireServer(log *logger.Logger, cfg Config, h Handlers, mw Middleware) *httpserver.Server {
	traceService := ""
	if cfg.Otel.Enabled {
		traceService = cfg.Otel.ServiceName
	}
	rc := httpserver.RouterConfig{
		Log:                 log,
		Templates:           templates.MustLoad(),
		CORSOrigins:         cfg.HTTP.CORSOrigins,
		TraceService:        traceService,
		AuthMiddleware:      mw.Auth,
		AuthHandler:         h.Auth,
		AssetHandler:        h.Asset,
		ContentImageHandler: h.ContentImage,
		UploadHandler:       h.Upload,
		MessageHandler:      h.Message,
		HealthHandler:       h.Health,
	}
	// Media is served by the app only for the local store; GCS URLs are absolute.
	if mode, _ := objectstore.ParseMode(cfg.Storage.Mode); mode == objectstore.ModeLocal {
		rc.MediaHandler = h.Media
	}
	return httpserver.NewServer(cfg.HTTP.Addr, rc)
}
