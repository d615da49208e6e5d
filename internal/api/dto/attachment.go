package dto

import "time"

type AttachmentDTO struct {
	ID             string    `json:"id"`
	AttachableType string    `json:"attachable_type"`
	AttachableID   string    `json:"attachable_id"`
	Category       string    `json:"category"`
	FileName       string    `json:"file_name"`
	FilePath       string    `json:"file_path"`
	FileSize       int64     `json:"file_size"`
	MimeType       string    `json:"mime_type"`
	ThumbnailPath  *string   `json:"thumbnail_path"`
	CreatedAt      time.Time `json:"created_at"`
}

// AttachmentUploadDTO 上传附件的表单字段
type AttachmentUploadDTO struct {
	AttachableType string `form:"attachable_type" binding:"required,oneof=post draft comment"`
	AttachableID   string `form:"attachable_id" binding:"required,len=21"`
	Category       string `form:"category" binding:"omitempty,oneof=gallery inline attachment"`
}

// AttachmentOwnerDTO 修改附件归属
type AttachmentOwnerDTO struct {
	AttachableType string `json:"attachable_type" binding:"required,oneof=post draft comment"`
	AttachableID   string `json:"attachable_id" binding:"required,len=21"`
}

// AttachmentQuery 按归属查询附件
type AttachmentQuery struct {
	AttachableType string `form:"attachable_type" binding:"required,oneof=post draft comment"`
	AttachableID   string `form:"attachable_id" binding:"required,len=21"`
}
