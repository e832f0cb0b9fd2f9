package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/assetdesk-backend/internal/data/db"
	"github.com/yungbote/assetdesk-backend/internal/data/repos"
	assetrepo "github.com/yungbote/assetdesk-backend/internal/data/repos/assets"
	"github.com/yungbote/assetdesk-backend/internal/domain/assets"
	"github.com/yungbote/assetdesk-backend/internal/forms"
	"github.com/yungbote/assetdesk-backend/internal/platform/apierr"
	"github.com/yungbote/assetdesk-backend/internal/platform/dbctx"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
)

// AssetListing is one page of a listing plus the filter state that produced it.
type AssetListing struct {
	Scope        assetrepo.ListScope
	Page         *assetrepo.Page[*assets.Asset]
	FilterErrors assetrepo.FilterErrors
	Parent       *assets.Asset
	Query        url.Values
}

type AssetService interface {
	List(ctx context.Context, scope assetrepo.ListScope, query url.Values) (*AssetListing, error)
	GetDetail(ctx context.Context, category assets.Category, rawID string) (*assets.Asset, error)
	GetEbook(ctx context.Context, rawID string) (*assets.UploadedFile, error)
	BulkCreate(ctx context.Context, createdBy uuid.UUID, descs []forms.AssetDescriptor) ([]*assets.Asset, forms.FieldErrors, error)
	UpdateStatus(ctx context.Context, rawID string, in forms.AssetStatusInput) (*assets.Asset, forms.FieldErrors, error)
}

type assetService struct {
	log          *logger.Logger
	tx           db.TxRunner
	assetRepo    repos.AssetRepo
	uploadedRepo repos.UploadedFileRepo
}

func NewAssetService(log *logger.Logger, tx db.TxRunner, assetRepo repos.AssetRepo, uploadedRepo repos.UploadedFileRepo) AssetService {
	return &assetService{
		log:          log.With("service", "AssetService"),
		tx:           tx,
		assetRepo:    assetRepo,
		uploadedRepo: uploadedRepo,
	}
}

func parseID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func (s *assetService) List(ctx context.Context, scope assetrepo.ListScope, query url.Values) (*AssetListing, error) {
	pageReq, err := assetrepo.ParsePageRequest(query.Get("page"))
	if err != nil {
		return nil, apierr.NotFound("page_not_found", "invalid page %q", query.Get("page"))
	}
	out := &AssetListing{Scope: scope, Query: query}
	dbc := dbctx.Context{Ctx: ctx}

	lq := assetrepo.ListQuery{Scope: scope, Page: pageReq}
	if scope == assetrepo.ScopeExplorer {
		if raw := query.Get("parent"); raw != "" {
			id, ok := parseID(raw)
			if !ok {
				return nil, apierr.NotFound("folder_not_found", "folder %q not found", raw)
			}
			parent, err := s.assetRepo.GetFolderByID(dbc, id)
			if err != nil {
				return nil, fmt.Errorf("load parent folder: %w", err)
			}
			if parent == nil {
				return nil, apierr.NotFound("folder_not_found", "folder %q not found", raw)
			}
			out.Parent = parent
			lq.ParentID = &parent.ID
		}
	}

	filter, ferrs := assetrepo.ParseAssetFilter(query)
	if ferrs != nil {
		// invalid filters yield an empty listing
		out.FilterErrors = ferrs
		out.Page, err = assetrepo.EmptyPage[*assets.Asset](pageReq)
		if err != nil {
			return nil, apierr.NotFound("page_not_found", "invalid page %q", query.Get("page"))
		}
		return out, nil
	}
	lq.Filter = filter

	page, err := s.assetRepo.List(dbc, lq)
	if errors.Is(err, assetrepo.ErrPageNotFound) {
		return nil, apierr.NotFound("page_not_found", "invalid page %q", query.Get("page"))
	}
	if err != nil {
		return nil, fmt.Errorf("list %s assets: %w", scope, err)
	}
	out.Page = page
	return out, nil
}

func (s *assetService) GetDetail(ctx context.Context, category assets.Category, rawID string) (*assets.Asset, error) {
	id, ok := parseID(rawID)
	if !ok {
		return nil, apierr.NotFound("asset_not_found", "asset %q not found", rawID)
	}
	a, err := s.assetRepo.GetDetail(dbctx.Context{Ctx: ctx}, id, category)
	if err != nil {
		return nil, fmt.Errorf("load asset detail: %w", err)
	}
	if a == nil {
		return nil, apierr.NotFound("asset_not_found", "asset %q not found", rawID)
	}
	return a, nil
}

func (s *assetService) GetEbook(ctx context.Context, rawID string) (*assets.UploadedFile, error) {
	id, ok := parseID(rawID)
	if !ok {
		return nil, apierr.NotFound("ebook_not_found", "ebook %q not found", rawID)
	}
	f, err := s.uploadedRepo.GetByIDAndType(dbctx.Context{Ctx: ctx}, id, assets.FileTypeDocument)
	if err != nil {
		return nil, fmt.Errorf("load ebook: %w", err)
	}
	if f == nil {
		return nil, apierr.NotFound("ebook_not_found", "ebook %q not found", rawID)
	}
	return f, nil
}
