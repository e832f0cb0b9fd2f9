package forms

import "github.com/yungbote/assetdesk-backend/internal/domain/assets"

// ContentImageInput is the posted content image form. ImageMIME is the
// sniffed type of the optional upload.
type ContentImageInput struct {
	ImageType string `form:"image_type" validate:"required,image_type"`
	ImageMIME string `form:"image" validate:"omitempty,image_mime"`
}

func CleanContentImage(in ContentImageInput) (assets.ImageType, FieldErrors, error) {
	ferrs, err := fromValidation(Validator().Struct(in), nil)
	if err != nil || len(ferrs) > 0 {
		return "", ferrs, err
	}
	t, _ := assets.ParseImageType(in.ImageType)
	return t, nil, nil
}
