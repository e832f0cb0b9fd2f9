package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/assetdesk-backend/internal/forms"
	"github.com/yungbote/assetdesk-backend/internal/http/middleware"
	"github.com/yungbote/assetdesk-backend/internal/http/response"
	"github.com/yungbote/assetdesk-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
	pages       *Pages
}

func NewAuthHandler(authService services.AuthService, pages *Pages) *AuthHandler {
	return &AuthHandler{authService: authService, pages: pages}
}

func (ah *AuthHandler) LoginPage(c *gin.Context) {
	ah.pages.Render(c, http.StatusOK, "login.html", &PageData{Title: "Sign in"})
}

// Login accepts JSON or form credentials. Form posts also get the token as
// a cookie and are sent to the asset listing.
func (ah *AuthHandler) Login(c *gin.Context) {
	var in forms.LoginInput
	if err := c.ShouldBind(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := ah.authService.Login(c.Request.Context(), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	expiresIn := int(time.Until(res.ExpiresAt).Seconds())
	if c.ContentType() != gin.MIMEJSON {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.AccessTokenCookie, res.AccessToken, expiresIn, "/", "", c.Request.TLS != nil, true)
		c.Redirect(http.StatusSeeOther, "/assets")
		return
	}
	response.RespondOK(c, gin.H{
		"access_token": res.AccessToken,
		"token_type":   "Bearer",
		"expires_in":   expiresIn,
		"user": gin.H{
			"id":    res.User.ID,
			"email": res.User.Email,
			"role":  res.User.Role,
		},
	})
}
