package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/assetdesk-backend/internal/platform/apierr"
)

const HeaderHXRedirect = "HX-Redirect"

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Detail  any    `json:"detail,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError maps err through apierr; anything unclassified is a 500
// with a generic message.
func RespondAPIError(c *gin.Context, err error) {
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		_ = c.Error(err)
		RespondError(c, http.StatusInternalServerError, "internal", errors.New("internal server error"))
		return
	}
	status := apierr.StatusOf(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: ae.Error(),
			Code:    ae.Code,
			Detail:  ae.Detail,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondJSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// HXRedirect tells an htmx client to navigate to target. It is a 200, not a 3xx.
func HXRedirect(c *gin.Context, target string) {
	c.Header(HeaderHXRedirect, target)
	c.Status(http.StatusOK)
}
