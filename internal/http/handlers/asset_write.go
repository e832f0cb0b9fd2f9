package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/assetdesk-backend/internal/forms"
	"github.com/yungbote/assetdesk-backend/internal/http/response"
	"github.com/yungbote/assetdesk-backend/internal/platform/ctxutil"
	"github.com/yungbote/assetdesk-backend/internal/services"
)

const maxBulkBodyBytes = 8 << 20

func statusError(c *gin.Context, code int, message any) {
	response.RespondJSON(c, code, gin.H{"status": "error", "message": message})
}

// BulkCreate inserts every posted asset descriptor in one transaction.
func (h *AssetHandler) BulkCreate(c *gin.Context) {
	if c.ContentType() != gin.MIMEJSON {
		statusError(c, http.StatusBadRequest, "Invalid content type. Expected JSON")
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBulkBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			statusError(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		statusError(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	descs, err := forms.DecodeBulkAssets(body)
	if err != nil {
		statusError(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	ctx := c.Request.Context()
	created, ferrs, err := h.assets.BulkCreate(ctx, ctxutil.UserID(ctx), descs)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if len(ferrs) > 0 {
		response.RespondJSON(c, http.StatusBadRequest, gin.H{"status": "error", "errors": ferrs})
		return
	}
	response.RespondJSON(c, http.StatusCreated, gin.H{
		"status": "success",
		"assets": services.SerializeAssets(created),
	})
}

func (h *AssetHandler) UpdateStatus(c *gin.Context) {
	// An unreadable body binds as an empty status; the service reports an
	// unknown asset before it looks at the field.
	var in forms.AssetStatusInput
	if err := c.ShouldBind(&in); err != nil {
		h.log.Debug("Unreadable status body", "asset_id", c.Param("id"), "error", err)
		in = forms.AssetStatusInput{}
	}
	a, ferrs, err := h.assets.UpdateStatus(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if len(ferrs) > 0 {
		statusError(c, http.StatusBadRequest, ferrs.ByField())
		return
	}
	response.RespondOK(c, gin.H{
		"status":   "success",
		"asset_id": a.ID,
		"message":  "Asset status updated",
	})
}
