package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	assetrepo "github.com/yungbote/assetdesk-backend/internal/data/repos/assets"
	"github.com/yungbote/assetdesk-backend/internal/domain/assets"
	"github.com/yungbote/assetdesk-backend/internal/forms"
	"github.com/yungbote/assetdesk-backend/internal/platform/dbctx"
)

const fileClaimedMessage = "This file is already attached to an asset."

// BulkCreate validates every descriptor and inserts all of them in one
// transaction, or none.
func (s *assetService) BulkCreate(ctx context.Context, createdBy uuid.UUID, descs []forms.AssetDescriptor) ([]*assets.Asset, forms.FieldErrors, error) {
	cleaned, ferrs, err := forms.CleanBulkAssets(descs)
	if err != nil {
		return nil, nil, err
	}
	if len(ferrs) > 0 {
		return nil, ferrs, nil
	}

	var creator *uuid.UUID
	if createdBy != uuid.Nil {
		creator = &createdBy
	}
	rows := make([]*assets.Asset, 0, len(cleaned))
	for _, c := range cleaned {
		rows = append(rows, &assets.Asset{
			Title:          c.Title,
			Category:       c.Category,
			Status:         c.Status,
			ParentID:       c.ParentID,
			UploadedFileID: c.UploadedFileID,
			CreatedByID:    creator,
			Metadata:       c.Metadata,
		})
	}

	// References are resolved in the same transaction as the insert; a
	// concurrent claim on the same file still surfaces through the unique index.
	var created []*assets.Asset
	err = s.tx.InTx(ctx, func(txc dbctx.Context) error {
		var rerr error
		ferrs, rerr = s.resolveReferences(txc, cleaned)
		if rerr != nil || len(ferrs) > 0 {
			return rerr
		}
		out, rerr := s.assetRepo.Create(txc, rows)
		if rerr != nil {
			return rerr
		}
		created = out
		return nil
	})
	if errors.Is(err, assetrepo.ErrUploadedFileClaimed) {
		return nil, claimConflicts(cleaned), nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("bulk create assets: %w", err)
	}
	if len(ferrs) > 0 {
		return nil, ferrs, nil
	}
	s.log.Info("Assets created in bulk", "count", len(created), "user_id", createdBy)
	return created, nil, nil
}

// resolveReferences checks parents are folders and files exist and are unclaimed.
func (s *assetService) resolveReferences(dbc dbctx.Context, cleaned []forms.CleanedAsset) (forms.FieldErrors, error) {
	var parentIDs, fileIDs []uuid.UUID
	for _, c := range cleaned {
		if c.ParentID != nil {
			parentIDs = append(parentIDs, *c.ParentID)
		}
		if c.UploadedFileID != nil {
			fileIDs = append(fileIDs, *c.UploadedFileID)
		}
	}

	parents := map[uuid.UUID]*assets.Asset{}
	if len(parentIDs) > 0 {
		rows, err := s.assetRepo.GetByIDs(dbc, parentIDs)
		if err != nil {
			return nil, fmt.Errorf("load parents: %w", err)
		}
		for _, p := range rows {
			parents[p.ID] = p
		}
	}

	files := map[uuid.UUID]bool{}
	claimed := map[uuid.UUID]bool{}
	if len(fileIDs) > 0 {
		rows, err := s.uploadedRepo.GetByIDs(dbc, fileIDs)
		if err != nil {
			return nil, fmt.Errorf("load uploaded files: %w", err)
		}
		for _, f := range rows {
			files[f.ID] = true
		}
		owners, err := s.assetRepo.GetByUploadedFileIDs(dbc, fileIDs)
		if err != nil {
			return nil, fmt.Errorf("load file owners: %w", err)
		}
		for _, a := range owners {
			if a.UploadedFileID != nil {
				claimed[*a.UploadedFileID] = true
			}
		}
	}

	var ferrs forms.FieldErrors
	seenFiles := map[uuid.UUID]bool{}
	for i, c := range cleaned {
		idx := i
		if c.ParentID != nil {
			p, ok := parents[*c.ParentID]
			switch {
			case !ok:
				ferrs = append(ferrs, forms.FieldError{Index: &idx, Field: "parent_id", Message: "Select a valid choice. That choice is not one of the available choices."})
			case !p.IsFolder():
				ferrs = append(ferrs, forms.FieldError{Index: &idx, Field: "parent_id", Message: "Parent must be a folder."})
			}
		}
		if c.UploadedFileID != nil {
			fid := *c.UploadedFileID
			switch {
			case !files[fid]:
				ferrs = append(ferrs, forms.FieldError{Index: &idx, Field: "uploaded_file_id", Message: "Select a valid choice. That choice is not one of the available choices."})
			case claimed[fid] || seenFiles[fid]:
				ferrs = append(ferrs, forms.FieldError{Index: &idx, Field: "uploaded_file_id", Message: fileClaimedMessage})
			}
			seenFiles[fid] = true
		}
	}
	return ferrs, nil
}

// claimConflicts blames every descriptor that named a file once the unique
// index rejected the batch.
func claimConflicts(cleaned []forms.CleanedAsset) forms.FieldErrors {
	var ferrs forms.FieldErrors
	for i, c := range cleaned {
		if c.UploadedFileID == nil {
			continue
		}
		idx := i
		ferrs = append(ferrs, forms.FieldError{Index: &idx, Field: "uploaded_file_id", Message: fileClaimedMessage})
	}
	return ferrs
}
