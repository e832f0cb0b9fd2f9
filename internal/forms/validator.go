package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/yungbote/assetdesk-backend/internal/domain/assets"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the asset enum rules registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
		_ = v.RegisterValidation("asset_category", func(fl validator.FieldLevel) bool {
			_, ok := assets.ParseCategory(fl.Field().String())
			return ok
		})
		_ = v.RegisterValidation("asset_status", func(fl validator.FieldLevel) bool {
			_, ok := assets.ParseStatus(fl.Field().String())
			return ok
		})
		_ = v.RegisterValidation("image_type", func(fl validator.FieldLevel) bool {
			_, ok := assets.ParseImageType(fl.Field().String())
			return ok
		})
		_ = v.RegisterValidation("image_mime", func(fl validator.FieldLevel) bool {
			return assets.FileTypeForMIME(fl.Field().String()) == assets.FileTypeImage
		})
		validate = v
	})
	return validate
}

// FieldError is one validation failure. Index is set for list items.
type FieldError struct {
	Index   *int   `json:"index,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		if e.Index != nil {
			parts = append(parts, fmt.Sprintf("[%d].%s: %s", *e.Index, e.Field, e.Message))
		} else {
			parts = append(parts, e.Field+": "+e.Message)
		}
	}
	return strings.Join(parts, "; ")
}

// ByField groups messages per field, dropping indexes.
func (fe FieldErrors) ByField() map[string][]string {
	out := make(map[string][]string, len(fe))
	for _, e := range fe {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

func (fe FieldErrors) Has(field string) bool {
	for _, e := range fe {
		if e.Field == field {
			return true
		}
	}
	return false
}

// fromValidation converts validator output; non-validation errors are returned as-is.
func fromValidation(err error, index *int) (FieldErrors, error) {
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Index: index, Field: fe.Field(), Message: message(fe)})
	}
	return out, nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "uuid":
		return "Enter a valid UUID."
	case "asset_category", "asset_status", "image_type":
		return fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value())
	case "image_mime":
		return "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	default:
		return "Enter a valid value."
	}
}
