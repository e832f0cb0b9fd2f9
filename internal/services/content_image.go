package services

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/yungbote/assetdesk-backend/internal/data/repos"
	"github.com/yungbote/assetdesk-backend/internal/domain/assets"
	"github.com/yungbote/assetdesk-backend/internal/forms"
	"github.com/yungbote/assetdesk-backend/internal/platform/apierr"
	"github.com/yungbote/assetdesk-backend/internal/platform/dbctx"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
	"github.com/yungbote/assetdesk-backend/internal/platform/objectstore"
)

const MaxContentImageBytes = 10 << 20

// ImageUpload is an optional file posted with a content image form.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

type ContentImageSubmission struct {
	ImageType string
	Image     *ImageUpload
}

type ContentImageService interface {
	GetContent(ctx context.Context, rawContentID string) (*assets.Content, error)
	GetImage(ctx context.Context, rawID string) (*assets.ContentImage, error)
	Create(ctx context.Context, content *assets.Content, sub ContentImageSubmission) (*assets.ContentImage, forms.FieldErrors, error)
	Update(ctx context.Context, image *assets.ContentImage, sub ContentImageSubmission) (*assets.ContentImage, forms.FieldErrors, error)
	Delete(ctx context.Context, image *assets.ContentImage) error
}

type contentImageService struct {
	log         *logger.Logger
	contentRepo repos.ContentRepo
	imageRepo   repos.ContentImageRepo
	store       objectstore.Store
}

func NewContentImageService(log *logger.Logger, contentRepo repos.ContentRepo, imageRepo repos.ContentImageRepo, store objectstore.Store) ContentImageService {
	return &contentImageService{
		log:         log.With("service", "ContentImageService"),
		contentRepo: contentRepo,
		imageRepo:   imageRepo,
		store:       store,
	}
}

func (s *contentImageService) GetContent(ctx context.Context, rawContentID string) (*assets.Content, error) {
	id, ok := parseID(rawContentID)
	if !ok {
		return nil, apierr.NotFound("content_not_found", "content %q not found", rawContentID)
	}
	c, err := s.contentRepo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	if c == nil {
		return nil, apierr.NotFound("content_not_found", "content %q not found", rawContentID)
	}
	return c, nil
}

func (s *contentImageService) GetImage(ctx context.Context, rawID string) (*assets.ContentImage, error) {
	id, ok := parseID(rawID)
	if !ok {
		return nil, apierr.NotFound("content_image_not_found", "content image %q not found", rawID)
	}
	ci, err := s.imageRepo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, fmt.Errorf("load content image: %w", err)
	}
	if ci == nil {
		return nil, apierr.NotFound("content_image_not_found", "content image %q not found", rawID)
	}
	return ci, nil
}

type sniffedImage struct {
	data []byte
	mime *mimetype.MIME
}

// clean validates the form and buffers the optional image for sniffing.
func (s *contentImageService) clean(sub ContentImageSubmission) (assets.ImageType, *sniffedImage, forms.FieldErrors, error) {
	in := forms.ContentImageInput{ImageType: sub.ImageType}
	var img *sniffedImage
	if sub.Image != nil && sub.Image.Reader != nil {
		data, err := io.ReadAll(io.LimitReader(sub.Image.Reader, MaxContentImageBytes+1))
		if err != nil {
			return "", nil, nil, fmt.Errorf("read image: %w", err)
		}
		if len(data) > MaxContentImageBytes {
			return "", nil, forms.FieldErrors{{Field: "image", Message: "Image files must be 10 MB or smaller."}}, nil
		}
		if len(data) == 0 {
			return "", nil, forms.FieldErrors{{Field: "image", Message: "The submitted file is empty."}}, nil
		}
		img = &sniffedImage{data: data, mime: mimetype.Detect(data)}
		in.ImageMIME = img.mime.String()
	}
	t, ferrs, err := forms.CleanContentImage(in)
	if err != nil || len(ferrs) > 0 {
		return "", nil, ferrs, err
	}
	return t, img, nil, nil
}

func (s *contentImageService) storeImage(ctx context.Context, contentID uuid.UUID, img *sniffedImage) (string, error) {
	key := fmt.Sprintf("content-images/%s/%s%s", contentID, uuid.NewString(), img.mime.Extension())
	if err := s.store.Put(ctx, key, bytes.NewReader(img.data), img.mime.String()); err != nil {
		return "", fmt.Errorf("store content image: %w", err)
	}
	return key, nil
}

func (s *contentImageService) Create(ctx context.Context, content *assets.Content, sub ContentImageSubmission) (*assets.ContentImage, forms.FieldErrors, error) {
	imageType, img, ferrs, err := s.clean(sub)
	if err != nil || len(ferrs) > 0 {
		return nil, ferrs, err
	}
	row := &assets.ContentImage{ContentID: content.ID, ImageType: imageType}
	if img != nil {
		if row.ImageKey, err = s.storeImage(ctx, content.ID, img); err != nil {
			return nil, nil, err
		}
	}
	created, err := s.imageRepo.Create(dbctx.Context{Ctx: ctx}, row)
	if err != nil {
		s.discard(ctx, row.ImageKey)
		return nil, nil, fmt.Errorf("create content image: %w", err)
	}
	created.Content = content
	return created, nil, nil
}

func (s *contentImageService) Update(ctx context.Context, image *assets.ContentImage, sub ContentImageSubmission) (*assets.ContentImage, forms.FieldErrors, error) {
	imageType, img, ferrs, err := s.clean(sub)
	if err != nil || len(ferrs) > 0 {
		return nil, ferrs, err
	}
	oldKey := image.ImageKey
	updated := *image
	updated.ImageType = imageType
	if img != nil {
		if updated.ImageKey, err = s.storeImage(ctx, image.ContentID, img); err != nil {
			return nil, nil, err
		}
	}
	if err := s.imageRepo.Update(dbctx.Context{Ctx: ctx}, &updated); err != nil {
		if img != nil {
			s.discard(ctx, updated.ImageKey)
		}
		return nil, nil, fmt.Errorf("update content image: %w", err)
	}
	if img != nil && oldKey != "" {
		s.discard(ctx, oldKey)
	}
	return &updated, nil, nil
}

func (s *contentImageService) Delete(ctx context.Context, image *assets.ContentImage) error {
	if err := s.imageRepo.Delete(dbctx.Context{Ctx: ctx}, image.ID); err != nil {
		return fmt.Errorf("delete content image: %w", err)
	}
	s.discard(ctx, image.ImageKey)
	return nil
}

// discard removes a stored object; failures only leave an orphan behind.
func (s *contentImageService) discard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		s.log.Warn("Failed to delete stored image", "key", key, "error", err)
	}
}
