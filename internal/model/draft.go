package model

import (
	"time"
)

// Draft 草稿，客户端持续自动保存，没有软删除
type Draft struct {
	ID        string    `gorm:"type:varchar(21);primaryKey" json:"id"`
	Content   string    `gorm:"type:longtext;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"index:idx_updated_at" json:"updatedAt"`
}

func (Draft) TableName() string {
	return "drafts"
}
