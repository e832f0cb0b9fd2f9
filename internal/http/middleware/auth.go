package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/assetdesk-backend/internal/domain/auth"
	"github.com/yungbote/assetdesk-backend/internal/http/response"
	"github.com/yungbote/assetdesk-backend/internal/platform/apierr"
	"github.com/yungbote/assetdesk-backend/internal/platform/ctxutil"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
	"github.com/yungbote/assetdesk-backend/internal/services"
)

// AccessTokenCookie is set by the login endpoint for browser clients.
const AccessTokenCookie = "assetdesk_token"

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
	authorizer  services.Authorizer
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService, authorizer services.Authorizer) *AuthMiddleware {
	return &AuthMiddleware{
		log:         log.With("middleware", "AuthMiddleware"),
		authService: authService,
		authorizer:  authorizer,
	}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortUnauthorized(c, "missing or invalid token")
			return
		}
		ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
		if err != nil {
			am.log.Debug("Token rejected", "error", err)
			abortUnauthorized(c, "missing or invalid token")
			return
		}
		if ctxutil.UserID(ctx) == uuid.Nil {
			abortUnauthorized(c, "missing or invalid token")
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequirePermission must run after RequireAuth.
func (am *AuthMiddleware) RequirePermission(perm auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := am.authorizer.Authorize(c.Request.Context(), ctxutil.UserID(c.Request.Context()), perm); err != nil {
			c.Abort()
			response.RespondAPIError(c, err)
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Abort()
	response.RespondAPIError(c, apierr.Unauthorized("unauthorized", "%s", msg))
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if qToken := c.Query("token"); qToken != "" {
		return qToken
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	return ""
}
