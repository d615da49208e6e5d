package repository

import (
	"errors"

	"gorm.io/gorm"
)

// Scope 软删除查询范围，所有读取都必须显式指定
type Scope int

const (
	ScopeActive Scope = iota
	ScopeTrashed
	ScopeAll
)

// Includes 判断给定的删除标记是否落在范围内
func (s Scope) Includes(trashed bool) bool {
	switch s {
	case ScopeActive:
		return !trashed
	case ScopeTrashed:
		return trashed
	default:
		return true
	}
}

func (s Scope) apply(db *gorm.DB) *gorm.DB {
	switch s {
	case ScopeActive:
		return db.Where("deleted_at IS NULL")
	case ScopeTrashed:
		return db.Where("deleted_at IS NOT NULL")
	default:
		return db
	}
}

// ListOptions 分页与排序
type ListOptions struct {
	Limit  int
	Offset int
	Desc   bool
}

func (o ListOptions) apply(db *gorm.DB, column string) *gorm.DB {
	order := column + " ASC"
	if o.Desc {
		order = column + " DESC"
	}
	db = db.Order(order).Order("id ASC")
	if o.Limit > 0 {
		db = db.Limit(o.Limit).Offset(o.Offset)
	}
	return db
}

// ErrNotFound 统一的记录不存在错误，gorm 与内存实现均返回它
var ErrNotFound = errors.New("record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
