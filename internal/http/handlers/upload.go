package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/assetdesk-backend/internal/http/response"
	"github.com/yungbote/assetdesk-backend/internal/platform/apierr"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
	"github.com/yungbote/assetdesk-backend/internal/services"
)

type UploadHandler struct {
	log     *logger.Logger
	uploads services.FileUploadService
}

func NewUploadHandler(log *logger.Logger, uploads services.FileUploadService) *UploadHandler {
	return &UploadHandler{log: log.With("handler", "UploadHandler"), uploads: uploads}
}

// Upload stores the multipart "file" field. Every failure is a 500 carrying
// the error text and a failure code.
func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		h.fail(c, services.MissingFileError(err))
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.fail(c, apierr.Internal(services.UploadCodeReadFailed, err))
		return
	}
	defer f.Close()

	row, err := h.uploads.Upload(c.Request.Context(), fh.Filename, f)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusCreated, gin.H{
		"message":  "File uploaded and saved successfully",
		"id":       row.ID,
		"file_url": h.uploads.URL(row),
	})
}

func (h *UploadHandler) fail(c *gin.Context, err error) {
	h.log.Error("Upload failed", "code", apierr.CodeOf(err), "error", err)
	response.RespondJSON(c, http.StatusInternalServerError, gin.H{
		"error": err.Error(),
		"code":  apierr.CodeOf(err),
	})
}
