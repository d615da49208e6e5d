package dto

import "time"

// CommentDTO 评论返回详情
type CommentDTO struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Attachments []*AttachmentDTO      `json:"attachments"`
	Reactions   []*ReactionSummaryDTO `json:"reactions"`
}

// CommentBaseDTO 创建或修改评论
type CommentBaseDTO struct {
	Content string `json:"content" binding:"required,max=5000"`
}
