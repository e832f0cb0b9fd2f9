package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

// CORS allows the configured origins, or the local dev origins when none are
// given. htmx request and response headers are allowed through.
func CORS(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = defaultOrigins
	}
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Authorization", "Content-Type", "X-Requested-With", "X-Request-Id",
			"HX-Request", "HX-Current-URL", "HX-Target", "HX-Trigger",
		},
		ExposeHeaders:    []string{"HX-Redirect", headerTraceID, headerRequestID},
		AllowCredentials: true,
	})
}
