package dto

import "time"

// PostDTO 帖子
type PostDTO struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Attachments []*AttachmentDTO      `json:"attachments"`
	Reactions   []*ReactionSummaryDTO `json:"reactions"`
}

// PostBaseDTO 帖子 - 新增或修改
type PostBaseDTO struct {
	Content string `json:"content" binding:"required"`
	// DraftID 从草稿发布时携带，草稿的附件转移到新帖子
	DraftID *string `json:"draft_id" binding:"omitempty,len=21"`
}

// TrashedPostDTO 回收站中的帖子
type TrashedPostDTO struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	DeletedAt     time.Time `json:"deleted_at"`
	DaysRemaining int       `json:"days_remaining"`
}

// ExportQuery 导出格式
type ExportQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=markdown html"`
}

// ExportDTO 导出结果
type ExportDTO struct {
	Format  string `json:"format"`
	Content string `json:"content"`
}
