package forms

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/assetdesk-backend/internal/domain/assets"
)

const MaxBulkAssets = 500

var ErrInvalidJSON = errors.New("invalid JSON body")

// AssetDescriptor is one element of a bulk create request.
type AssetDescriptor struct {
	Title          string          `json:"title" validate:"required,max=255"`
	Category       string          `json:"category" validate:"required,asset_category"`
	Status         string          `json:"status" validate:"omitempty,asset_status"`
	ParentID       string          `json:"parent_id" validate:"omitempty,uuid"`
	UploadedFileID string          `json:"uploaded_file_id" validate:"omitempty,uuid"`
	Metadata       json.RawMessage `json:"metadata"`
}

// CleanedAsset is a validated descriptor; references are not yet resolved.
type CleanedAsset struct {
	Title          string
	Category       assets.Category
	Status         assets.Status
	ParentID       *uuid.UUID
	UploadedFileID *uuid.UUID
	Metadata       datatypes.JSON
}

// DecodeBulkAssets accepts a JSON array, or an object with an "assets" array.
func DecodeBulkAssets(body []byte) ([]AssetDescriptor, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, ErrInvalidJSON
	}
	var out []AssetDescriptor
	if trimmed[0] == '{' {
		var wrapped struct {
			Assets []AssetDescriptor `json:"assets"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, ErrInvalidJSON
		}
		out = wrapped.Assets
	} else if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, ErrInvalidJSON
	}
	if out == nil {
		out = []AssetDescriptor{}
	}
	return out, nil
}

// CleanBulkAssets validates shape and enums of every descriptor.
func CleanBulkAssets(descs []AssetDescriptor) ([]CleanedAsset, FieldErrors, error) {
	switch {
	case len(descs) == 0:
		return nil, FieldErrors{{Field: "assets", Message: "At least one asset is required."}}, nil
	case len(descs) > MaxBulkAssets:
		return nil, FieldErrors{{Field: "assets", Message: "Ensure this list has at most 500 assets."}}, nil
	}

	v := Validator()
	var errs FieldErrors
	out := make([]CleanedAsset, 0, len(descs))
	for i := range descs {
		idx := i
		d := descs[i]
		ferrs, err := fromValidation(v.Struct(d), &idx)
		if err != nil {
			return nil, nil, err
		}
		if md := bytes.TrimSpace(d.Metadata); len(md) > 0 && !bytes.Equal(md, []byte("null")) && md[0] != '{' {
			ferrs = append(ferrs, FieldError{Index: &idx, Field: "metadata", Message: "Metadata must be a JSON object."})
		}
		if len(ferrs) > 0 {
			errs = append(errs, ferrs...)
			continue
		}

		category, _ := assets.ParseCategory(d.Category)
		c := CleanedAsset{
			Title:    d.Title,
			Category: category,
			Status:   assets.DefaultStatus(category),
		}
		if d.Status != "" {
			c.Status, _ = assets.ParseStatus(d.Status)
		}
		if d.ParentID != "" {
			id := uuid.MustParse(d.ParentID)
			c.ParentID = &id
		}
		if d.UploadedFileID != "" {
			id := uuid.MustParse(d.UploadedFileID)
			c.UploadedFileID = &id
		}
		if md := bytes.TrimSpace(d.Metadata); len(md) > 0 && md[0] == '{' {
			c.Metadata = datatypes.JSON(md)
		}
		out = append(out, c)
	}
	if len(errs) > 0 {
		return nil, errs, nil
	}
	return out, nil, nil
}

type AssetStatusInput struct {
	Status string `json:"status" form:"status" validate:"required,asset_status"`
}

// CleanAssetStatus validates the status form field.
func CleanAssetStatus(in AssetStatusInput) (assets.Status, FieldErrors, error) {
	ferrs, err := fromValidation(Validator().Struct(in), nil)
	if err != nil || len(ferrs) > 0 {
		return "", ferrs, err
	}
	s, _ := assets.ParseStatus(in.Status)
	return s, nil, nil
}
