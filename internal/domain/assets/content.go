package assets

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Content is a publishable item that groups assets and carries artwork.
type Content struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Title  string          `gorm:"column:title;size:255;not null" json:"title"`
	Assets []*Asset        `gorm:"many2many:content_assets;" json:"assets,omitempty"`
	Images []*ContentImage `gorm:"foreignKey:ContentID;constraint:OnDelete:CASCADE" json:"images,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Content) TableName() string { return "content" }

func (c *Content) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type ImageType string

const (
	ImageTypeThumbnail ImageType = "THUMBNAIL"
	ImageTypeCover     ImageType = "COVER"
	ImageTypePoster    ImageType = "POSTER"
	ImageTypeBanner    ImageType = "BANNER"
	ImageTypeSquare    ImageType = "SQUARE"
)

var ImageTypes = []ImageType{
	ImageTypeThumbnail,
	ImageTypeCover,
	ImageTypePoster,
	ImageTypeBanner,
	ImageTypeSquare,
}

var imageTypeLabels = map[ImageType]string{
	ImageTypeThumbnail: "Thumbnail",
	ImageTypeCover:     "Cover Image",
	ImageTypePoster:    "Poster",
	ImageTypeBanner:    "Banner",
	ImageTypeSquare:    "Square Image",
}

func (t ImageType) Valid() bool {
	_, ok := imageTypeLabels[t]
	return ok
}

func (t ImageType) Label() string {
	if l, ok := imageTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

func ParseImageType(raw string) (ImageType, bool) {
	t := ImageType(strings.ToUpper(strings.TrimSpace(raw)))
	return t, t.Valid()
}

type ContentImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ContentID uuid.UUID `gorm:"type:uuid;column:content_id;not null;index" json:"content_id"`
	Content   *Content  `gorm:"foreignKey:ContentID;references:ID" json:"content,omitempty"`
	ImageType ImageType `gorm:"column:image_type;size:16;not null" json:"image_type"`
	ImageKey  string    `gorm:"column:image_key" json:"image_key,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ContentImage) TableName() string { return "content_image" }

func (ci *ContentImage) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}
