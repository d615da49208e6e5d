package dto

import "time"

type ReactionDTO struct {
	ID            string    `json:"id"`
	ReactableType string    `json:"reactable_type"`
	ReactableID   string    `json:"reactable_id"`
	Emoji         string    `json:"emoji"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReactionCreateDTO 添加互动
type ReactionCreateDTO struct {
	ReactableType string `json:"reactable_type" binding:"required,oneof=post comment"`
	ReactableID   string `json:"reactable_id" binding:"required,len=21"`
	Emoji         string `json:"emoji" binding:"required,max=32"`
}

// ReactionQuery 按目标查询互动
type ReactionQuery struct {
	ReactableType string `form:"reactable_type" binding:"required,oneof=post comment"`
	ReactableID   string `form:"reactable_id" binding:"required,len=21"`
}

// ReactionSummaryDTO 同一 emoji 的聚合结果
type ReactionSummaryDTO struct {
	Emoji string   `json:"emoji"`
	Count int      `json:"count"`
	IDs   []string `json:"ids"`
}
