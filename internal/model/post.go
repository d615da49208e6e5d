package model

import (
	"time"
)

type Post struct {
	ID        string     `gorm:"type:varchar(21);primaryKey" json:"id"`
	Content   string     `gorm:"type:longtext;not null" json:"content"`
	CreatedAt time.Time  `gorm:"index:idx_created_at" json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `gorm:"index:idx_deleted_at" json:"deletedAt"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) State() TrashState {
	return stateOf(p.DeletedAt)
}
