package handlers

import (
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/assetdesk-backend/internal/http/response"
	"github.com/yungbote/assetdesk-backend/internal/platform/apierr"
	"github.com/yungbote/assetdesk-backend/internal/platform/ctxutil"
	"github.com/yungbote/assetdesk-backend/internal/platform/flash"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
	"github.com/yungbote/assetdesk-backend/internal/services"
)

// PageData is the root value handed to every full HTML page.
type PageData struct {
	Title    string
	Messages []flash.Message
	Query    url.Values
	Listing  *services.ListingView
	Asset    *services.AssetView
	File     *services.UploadedFileView
	Error    string
}

// Pages renders HTML pages and drains pending flash messages into them.
type Pages struct {
	log   *logger.Logger
	flash flash.Store
}

func NewPages(log *logger.Logger, store flash.Store) *Pages {
	return &Pages{log: log.With("handler", "Pages"), flash: store}
}

func wantsHTML(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML
}

func (p *Pages) Render(c *gin.Context, status int, name string, data *PageData) {
	if p.flash != nil {
		if uid := ctxutil.UserID(c.Request.Context()); uid != uuid.Nil {
			msgs, err := p.flash.Pop(c.Request.Context(), uid)
			if err != nil {
				p.log.Warn("Failed to load flash messages", "error", err)
			}
			data.Messages = msgs
		}
	}
	c.HTML(status, name, data)
}

// Fail answers an error as a page for browsers and as JSON otherwise.
func (p *Pages) Fail(c *gin.Context, err error) {
	if !wantsHTML(c) {
		response.RespondAPIError(c, err)
		return
	}
	status := apierr.StatusOf(err)
	msg := "Something went wrong."
	if status < 500 {
		msg = err.Error()
	} else {
		_ = c.Error(err)
	}
	p.Render(c, status, "error.html", &PageData{Title: "Error", Error: msg})
}
