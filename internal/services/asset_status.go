package services

import (
	"context"
	"fmt"

	"github.com/yungbote/assetdesk-backend/internal/domain/assets"
	"github.com/yungbote/assetdesk-backend/internal/forms"
	"github.com/yungbote/assetdesk-backend/internal/platform/apierr"
	"github.com/yungbote/assetdesk-backend/internal/platform/dbctx"
)

// UpdateStatus resolves the asset first so an unknown id is a 404 even when
// the submitted status is also invalid.
func (s *assetService) UpdateStatus(ctx context.Context, rawID string, in forms.AssetStatusInput) (*assets.Asset, forms.FieldErrors, error) {
	id, ok := parseID(rawID)
	if !ok {
		return nil, nil, apierr.NotFound("asset_not_found", "asset %q not found", rawID)
	}
	dbc := dbctx.Context{Ctx: ctx}
	a, err := s.assetRepo.GetByID(dbc, id)
	if err != nil {
		return nil, nil, fmt.Errorf("load asset: %w", err)
	}
	if a == nil {
		return nil, nil, apierr.NotFound("asset_not_found", "asset %q not found", rawID)
	}

	status, ferrs, err := forms.CleanAssetStatus(in)
	if err != nil {
		return nil, nil, err
	}
	if len(ferrs) > 0 {
		return nil, ferrs, nil
	}

	if err := s.assetRepo.UpdateStatus(dbc, a.ID, status); err != nil {
		return nil, nil, fmt.Errorf("update asset status: %w", err)
	}
	s.log.Info("Asset status updated", "asset_id", a.ID, "from", a.Status, "to", status)
	a.Status = status
	return a, nil, nil
}
