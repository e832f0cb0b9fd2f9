package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/assetdesk-backend/internal/domain/assets"
	"github.com/yungbote/assetdesk-backend/internal/http/response"
	"github.com/yungbote/assetdesk-backend/internal/platform/apierr"
	"github.com/yungbote/assetdesk-backend/internal/platform/ctxutil"
	"github.com/yungbote/assetdesk-backend/internal/platform/flash"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
	"github.com/yungbote/assetdesk-backend/internal/services"
)

type imageTypeOption struct {
	Value string
	Label string
}

type contentImageForm struct {
	Action     string
	Content    *assets.Content
	Image      *services.ContentImageView
	ImageTypes []imageTypeOption
	Selected   string
	Errors     map[string][]string
}

type ContentImageHandler struct {
	log       *logger.Logger
	images    services.ContentImageService
	presenter *services.Presenter
	flash     flash.Store
}

func NewContentImageHandler(log *logger.Logger, images services.ContentImageService, presenter *services.Presenter, store flash.Store) *ContentImageHandler {
	return &ContentImageHandler{
		log:       log.With("handler", "ContentImageHandler"),
		images:    images,
		presenter: presenter,
		flash:     store,
	}
}

// redirectTarget reads ?redirect_to, accepting only same-site paths.
func redirectTarget(c *gin.Context) (string, bool) {
	raw := strings.TrimSpace(c.Query("redirect_to"))
	if raw == "" {
		response.RespondAPIError(c, apierr.BadRequest("missing_redirect_to", "redirect_to is required"))
		return "", false
	}
	u, err := url.Parse(raw)
	// Browsers read a backslash as a slash, so "/\host" is protocol-relative.
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") ||
		strings.ContainsAny(raw, "\\\x00\r\n\t") {
		response.RespondAPIError(c, apierr.BadRequest("invalid_redirect_to", "redirect_to must be a site-relative path"))
		return "", false
	}
	return raw, true
}

func (h *ContentImageHandler) Create(c *gin.Context) {
	target, ok := redirectTarget(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	content, err := h.images.GetContent(ctx, c.Param("content_id"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	form := &contentImageForm{Action: c.Request.URL.RequestURI(), Content: content}
	if c.Request.Method != http.MethodPost {
		h.renderForm(c, form)
		return
	}

	sub, closeFn, err := readImageSubmission(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	defer closeFn()
	created, ferrs, err := h.images.Create(ctx, content, sub)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if len(ferrs) > 0 {
		form.Selected = sub.ImageType
		form.Errors = ferrs.ByField()
		h.renderForm(c, form)
		return
	}
	h.notify(c, created.ImageType.Label()+" added successfully!")
	response.HXRedirect(c, target)
}

func (h *ContentImageHandler) Update(c *gin.Context) {
	target, ok := redirectTarget(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	image, err := h.images.GetImage(ctx, c.Param("id"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	form := &contentImageForm{
		Action:   c.Request.URL.RequestURI(),
		Content:  image.Content,
		Image:    h.presenter.ContentImage(image),
		Selected: string(image.ImageType),
	}
	if c.Request.Method != http.MethodPost {
		h.renderForm(c, form)
		return
	}

	sub, closeFn, err := readImageSubmission(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	defer closeFn()
	updated, ferrs, err := h.images.Update(ctx, image, sub)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if len(ferrs) > 0 {
		form.Selected = sub.ImageType
		form.Errors = ferrs.ByField()
		h.renderForm(c, form)
		return
	}
	h.notify(c, updated.ImageType.Label()+" updated successfully!")
	response.HXRedirect(c, target)
}

// Delete is POST only; the router answers 405 for other methods.
func (h *ContentImageHandler) Delete(c *gin.Context) {
	target, ok := redirectTarget(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	image, err := h.images.GetImage(ctx, c.Param("id"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if err := h.images.Delete(ctx, image); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	h.notify(c, image.ImageType.Label()+" deleted successfully!")
	c.Redirect(http.StatusFound, target)
}

func (h *ContentImageHandler) renderForm(c *gin.Context, form *contentImageForm) {
	for _, t := range assets.ImageTypes {
		form.ImageTypes = append(form.ImageTypes, imageTypeOption{Value: string(t), Label: t.Label()})
	}
	if form.Errors == nil {
		form.Errors = map[string][]string{}
	}
	c.HTML(http.StatusOK, "content_image_form.html", form)
}

func (h *ContentImageHandler) notify(c *gin.Context, text string) {
	uid := ctxutil.UserID(c.Request.Context())
	if h.flash == nil || uid == uuid.Nil {
		return
	}
	if err := h.flash.Add(c.Request.Context(), uid, flash.Success(text)); err != nil {
		h.log.Warn("Failed to queue flash message", "error", err)
	}
}

func readImageSubmission(c *gin.Context) (services.ContentImageSubmission, func(), error) {
	sub := services.ContentImageSubmission{ImageType: c.PostForm("image_type")}
	noop := func() {}
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return sub, noop, nil
	}
	if err != nil {
		return sub, noop, apierr.BadRequest("invalid_upload", "read image: %v", err)
	}
	return openImage(sub, fh)
}

func openImage(sub services.ContentImageSubmission, fh *multipart.FileHeader) (services.ContentImageSubmission, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return sub, func() {}, apierr.BadRequest("invalid_upload", "open image: %v", err)
	}
	sub.Image = &services.ImageUpload{Filename: fh.Filename, Reader: f}
	return sub, func() { _ = f.Close() }, nil
}
