package model

import (
	"time"
)

const (
	AttachablePost    = "post"
	AttachableDraft   = "draft"
	AttachableComment = "comment"
)

const (
	CategoryGallery    = "gallery"
	CategoryInline     = "inline"
	CategoryAttachment = "attachment"
)

type Attachment struct {
	ID             string    `gorm:"type:varchar(21);primaryKey" json:"id"`
	AttachableType string    `gorm:"type:varchar(16);not null;index:idx_attachable" json:"attachableType"`
	AttachableID   string    `gorm:"type:varchar(21);not null;index:idx_attachable" json:"attachableId"`
	Category       string    `gorm:"type:varchar(16);not null" json:"category"`
	FileName       string    `gorm:"type:varchar(255);not null" json:"fileName"`
	FilePath       string    `gorm:"type:varchar(512);not null" json:"filePath"` // 相对上传根目录
	FileSize       int64     `gorm:"not null;default:0" json:"fileSize"`
	MimeType       string    `gorm:"type:varchar(128);not null" json:"mimeType"`
	ThumbnailPath  *string   `gorm:"type:varchar(512)" json:"thumbnailPath"`
	CreatedAt      time.Time `gorm:"index:idx_created_at" json:"createdAt"`
}

func (Attachment) TableName() string {
	return "attachments"
}
