package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	assetrepo "github.com/yungbote/assetdesk-backend/internal/data/repos/assets"
	"github.com/yungbote/assetdesk-backend/internal/domain/assets"
	"github.com/yungbote/assetdesk-backend/internal/http/response"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
	"github.com/yungbote/assetdesk-backend/internal/services"
)

type AssetHandler struct {
	log       *logger.Logger
	assets    services.AssetService
	presenter *services.Presenter
	pages     *Pages
}

func NewAssetHandler(log *logger.Logger, assets services.AssetService, presenter *services.Presenter, pages *Pages) *AssetHandler {
	return &AssetHandler{
		log:       log.With("handler", "AssetHandler"),
		assets:    assets,
		presenter: presenter,
		pages:     pages,
	}
}

func (h *AssetHandler) ListAll(c *gin.Context) { h.list(c, assetrepo.ScopeAll, "All assets") }

func (h *AssetHandler) ListUnused(c *gin.Context) { h.list(c, assetrepo.ScopeUnused, "Unused assets") }

func (h *AssetHandler) ListTranscoding(c *gin.Context) {
	h.list(c, assetrepo.ScopeTranscoding, "Transcoding assets")
}

// Explorer lists the children of ?parent, or the root level without it.
func (h *AssetHandler) Explorer(c *gin.Context) { h.list(c, assetrepo.ScopeExplorer, "Explorer") }

func (h *AssetHandler) list(c *gin.Context, scope assetrepo.ListScope, title string) {
	listing, err := h.assets.List(c.Request.Context(), scope, c.Request.URL.Query())
	if err != nil {
		h.pages.Fail(c, err)
		return
	}
	view := h.presenter.Listing(listing)
	if !wantsHTML(c) {
		response.RespondOK(c, view)
		return
	}
	if listing.Parent != nil {
		title = listing.Parent.Title
	}
	h.pages.Render(c, http.StatusOK, "asset_list.html", &PageData{
		Title:   title,
		Query:   listing.Query,
		Listing: view,
	})
}

func (h *AssetHandler) VideoDetail(c *gin.Context) { h.detail(c, assets.CategoryVideo) }

func (h *AssetHandler) AudioDetail(c *gin.Context) { h.detail(c, assets.CategoryAudio) }

func (h *AssetHandler) EbookDetail(c *gin.Context) { h.detail(c, assets.CategoryEbook) }

func (h *AssetHandler) detail(c *gin.Context, category assets.Category) {
	a, err := h.assets.GetDetail(c.Request.Context(), category, c.Param("id"))
	if err != nil {
		h.pages.Fail(c, err)
		return
	}
	view := h.presenter.Asset(a)
	if !wantsHTML(c) {
		response.RespondOK(c, view)
		return
	}
	h.pages.Render(c, http.StatusOK, "asset_detail.html", &PageData{Title: a.Title, Asset: view})
}

func (h *AssetHandler) EbookReader(c *gin.Context) {
	f, err := h.assets.GetEbook(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.pages.Fail(c, err)
		return
	}
	view := h.presenter.UploadedFile(f)
	if !wantsHTML(c) {
		response.RespondOK(c, view)
		return
	}
	h.pages.Render(c, http.StatusOK, "ebook_reader.html", &PageData{Title: f.OriginalName, File: view})
}
