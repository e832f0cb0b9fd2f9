package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/assetdesk-backend/internal/http/response"
	"github.com/yungbote/assetdesk-backend/internal/platform/apierr"
	"github.com/yungbote/assetdesk-backend/internal/platform/ctxutil"
	"github.com/yungbote/assetdesk-backend/internal/platform/flash"
)

type MessageHandler struct {
	flash flash.Store
}

func NewMessageHandler(store flash.Store) *MessageHandler {
	return &MessageHandler{flash: store}
}

// Pop returns and clears the caller's pending flash messages.
func (h *MessageHandler) Pop(c *gin.Context) {
	ctx := c.Request.Context()
	msgs, err := h.flash.Pop(ctx, ctxutil.UserID(ctx))
	if err != nil {
		response.RespondAPIError(c, apierr.Internal("flash_unavailable", err))
		return
	}
	response.RespondOK(c, gin.H{"messages": msgs})
}
