package assets

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FileType string

const (
	FileTypeImage    FileType = "IMAGE"
	FileTypeVideo    FileType = "VIDEO"
	FileTypeAudio    FileType = "AUDIO"
	FileTypeDocument FileType = "DOCUMENT"
	FileTypeOther    FileType = "OTHER"
)

var documentMIMEs = map[string]bool{
	"application/pdf":      true,
	"application/epub+zip": true,
	"application/msword":   true,
	"application/rtf":      true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.oasis.opendocument.text":                                  true,
}

// FileTypeForMIME classifies a sniffed MIME type (parameters ignored).
func FileTypeForMIME(mimeType string) FileType {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	switch {
	case strings.HasPrefix(mt, "image/"):
		return FileTypeImage
	case strings.HasPrefix(mt, "video/"):
		return FileTypeVideo
	case strings.HasPrefix(mt, "audio/"):
		return FileTypeAudio
	case documentMIMEs[mt], strings.HasPrefix(mt, "text/"):
		return FileTypeDocument
	default:
		return FileTypeOther
	}
}

// UploadedFile records a blob in the object store.
type UploadedFile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StorageKey   string    `gorm:"column:storage_key;not null;uniqueIndex" json:"storage_key"`
	OriginalName string    `gorm:"column:original_name;not null" json:"original_name"`
	MimeType     string    `gorm:"column:mime_type;size:255;not null" json:"mime_type"`
	SizeBytes    int64     `gorm:"column:size_bytes;not null" json:"size_bytes"`
	FileType     FileType  `gorm:"column:file_type;size:16;not null;index" json:"file_type"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

func (UploadedFile) TableName() string { return "uploaded_file" }

func (f *UploadedFile) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
