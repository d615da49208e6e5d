package dto

import "time"

type DraftDTO struct {
	ID          string           `json:"id"`
	Content     string           `json:"content"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Attachments []*AttachmentDTO `json:"attachments"`
}

type DraftBaseDTO struct {
	Content string `json:"content"`
}
