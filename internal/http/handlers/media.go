package handlers

import (
	"errors"
	"mime"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/assetdesk-backend/internal/platform/objectstore"
)

type MediaHandler struct {
	store objectstore.Store
}

func NewMediaHandler(store objectstore.Store) *MediaHandler {
	return &MediaHandler{store: store}
}

// Serve streams a stored object by key for the local backend's public URLs.
func (h *MediaHandler) Serve(c *gin.Context) {
	key, err := objectstore.CleanKey(c.Param("key"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	rc, err := h.store.Open(c.Request.Context(), key)
	if errors.Is(err, objectstore.ErrNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{
		"X-Content-Type-Options": "nosniff",
		"Cache-Control":          "private, max-age=3600",
	})
}
