package model

import (
	"time"
)

const (
	ReactablePost    = "post"
	ReactableComment = "comment"
)

// Reaction 同一目标上允许重复的 emoji，每条都是独立记录
type Reaction struct {
	ID            string    `gorm:"type:varchar(21);primaryKey" json:"id"`
	ReactableType string    `gorm:"type:varchar(16);not null;index:idx_reactable" json:"reactableType"`
	ReactableID   string    `gorm:"type:varchar(21);not null;index:idx_reactable" json:"reactableId"`
	Emoji         string    `gorm:"type:varchar(32);not null" json:"emoji"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (Reaction) TableName() string {
	return "reactions"
}
