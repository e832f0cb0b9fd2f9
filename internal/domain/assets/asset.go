package assets

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category string

const (
	CategoryVideo      Category = "VIDEO"
	CategoryAudio      Category = "AUDIO"
	CategoryEbook      Category = "EBOOK"
	CategoryLiveStream Category = "LIVE_STREAM"
	CategoryImage      Category = "IMAGE"
	CategoryDocument   Category = "DOCUMENT"
	CategoryFolder     Category = "FOLDER"
)

var Categories = []Category{
	CategoryVideo,
	CategoryAudio,
	CategoryEbook,
	CategoryLiveStream,
	CategoryImage,
	CategoryDocument,
	CategoryFolder,
}

var categoryLabels = map[Category]string{
	CategoryVideo:      "Video",
	CategoryAudio:      "Audio",
	CategoryEbook:      "Ebook",
	CategoryLiveStream: "Live Stream",
	CategoryImage:      "Image",
	CategoryDocument:   "Document",
	CategoryFolder:     "Folder",
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// ParseCategory accepts enum values case-insensitively.
func ParseCategory(raw string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(raw)))
	return c, c.Valid()
}

type Status string

const (
	StatusQueued      Status = "QUEUED"
	StatusTranscoding Status = "TRANSCODING"
	StatusError       Status = "ERROR"
	StatusReady       Status = "READY"
	StatusUploaded    Status = "UPLOADED"
)

var Statuses = []Status{
	StatusQueued,
	StatusTranscoding,
	StatusError,
	StatusReady,
	StatusUploaded,
}

var statusLabels = map[Status]string{
	StatusQueued:      "Queued",
	StatusTranscoding: "Transcoding",
	StatusError:       "Error",
	StatusReady:       "Ready",
	StatusUploaded:    "Uploaded",
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	return s, s.Valid()
}

// TranscodingStatuses and TranscodableCategories define the transcoding queue.
var (
	TranscodingStatuses    = []Status{StatusQueued, StatusTranscoding, StatusError}
	TranscodableCategories = []Category{CategoryVideo, CategoryAudio, CategoryLiveStream}
)

// DefaultStatus is the status given to a new asset when none is supplied.
func DefaultStatus(c Category) Status {
	if c == CategoryFolder {
		return StatusReady
	}
	return StatusUploaded
}

// Asset is a media item or a folder. Only folders may have children.
type Asset struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title    string    `gorm:"column:title;size:255;not null" json:"title"`
	Category Category  `gorm:"column:category;size:32;not null;index" json:"category"`
	Status   Status    `gorm:"column:status;size:32;not null;index" json:"status"`

	ParentID *uuid.UUID `gorm:"type:uuid;column:parent_id;index" json:"parent_id,omitempty"`
	Parent   *Asset     `gorm:"foreignKey:ParentID;references:ID;constraint:OnDelete:SET NULL" json:"parent,omitempty"`

	UploadedFileID *uuid.UUID    `gorm:"type:uuid;column:uploaded_file_id;uniqueIndex" json:"uploaded_file_id,omitempty"`
	UploadedFile   *UploadedFile `gorm:"foreignKey:UploadedFileID;references:ID;constraint:OnDelete:SET NULL" json:"uploaded_file,omitempty"`

	CreatedByID *uuid.UUID `gorm:"type:uuid;column:created_by_id;index" json:"created_by_id,omitempty"`

	Contents []*Content `gorm:"many2many:content_assets;" json:"contents,omitempty"`

	Metadata datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Asset) TableName() string { return "asset" }

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *Asset) IsFolder() bool { return a != nil && a.Category == CategoryFolder }
