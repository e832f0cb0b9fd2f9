package http

import (
	"html/template"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/assetdesk-backend/internal/domain/auth"
	httpH "github.com/yungbote/assetdesk-backend/internal/http/handlers"
	httpMW "github.com/yungbote/assetdesk-backend/internal/http/middleware"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Templates   *template.Template
	CORSOrigins []string
	// TraceService enables otelgin spans under this service name.
	TraceService string

	AuthMiddleware *httpMW.AuthMiddleware
	AuthHandler    *httpH.AuthHandler

	AssetHandler        *httpH.AssetHandler
	ContentImageHandler *httpH.ContentImageHandler
	UploadHandler       *httpH.UploadHandler
	MessageHandler      *httpH.MessageHandler

	HealthHandler *httpH.HealthHandler
	MediaHandler  *httpH.MediaHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(httpMW.Recovery(log))
	if cfg.TraceService != "" {
		r.Use(otelgin.Middleware(cfg.TraceService))
	}
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	if cfg.Templates != nil {
		r.SetHTMLTemplate(cfg.Templates)
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// Media (local object store)
	if cfg.MediaHandler != nil {
		r.GET("/media/*key", cfg.MediaHandler.Serve)
	}

	// Auth (public)
	if cfg.AuthHandler != nil {
		r.GET("/login", cfg.AuthHandler.LoginPage)
		r.POST("/api/login", cfg.AuthHandler.Login)
	}

	am := cfg.AuthMiddleware
	if am == nil {
		return r
	}
	protected := r.Group("/")
	protected.Use(am.RequireAuth())
	{
		if h := cfg.AssetHandler; h != nil {
			view := protected.Group("/", am.RequirePermission(auth.PermViewAsset))
			view.GET("/assets", h.ListAll)
			view.GET("/assets/unused", h.ListUnused)
			view.GET("/assets/transcoding", h.ListTranscoding)
			view.GET("/assets/explorer", h.Explorer)
			view.GET("/assets/video/:id", h.VideoDetail)
			view.GET("/assets/audio/:id", h.AudioDetail)
			view.GET("/assets/ebook/:id", h.EbookDetail)
			view.GET("/ebooks/:id", h.EbookReader)

			protected.POST("/api/assets/bulk", am.RequirePermission(auth.PermAddAsset), h.BulkCreate)
			protected.POST("/api/assets/:id/status", am.RequirePermission(auth.PermChangeAsset), h.UpdateStatus)
		}

		if h := cfg.UploadHandler; h != nil {
			protected.POST("/api/upload", h.Upload)
		}

		if h := cfg.ContentImageHandler; h != nil {
			protected.GET("/contents/:content_id/images", h.Create)
			protected.POST("/contents/:content_id/images", h.Create)
			protected.GET("/content-images/:id", h.Update)
			protected.POST("/content-images/:id", h.Update)
			protected.POST("/content-images/:id/delete", h.Delete)
		}

		if h := cfg.MessageHandler; h != nil {
			protected.GET("/api/messages", h.Pop)
		}
	}

	return r
}
