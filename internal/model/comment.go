package model

import (
	"time"
)

type Comment struct {
	ID        string     `gorm:"type:varchar(21);primaryKey" json:"id"`
	PostID    string     `gorm:"type:varchar(21);not null;index:idx_post_id" json:"postId"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `gorm:"index:idx_deleted_at" json:"deletedAt"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) State() TrashState {
	return stateOf(c.DeletedAt)
}
