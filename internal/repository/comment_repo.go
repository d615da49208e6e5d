package repository

import (
	"Microblog/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetComment(ctx context.Context, id string, scope Scope) (*model.Comment, error)
	ListCommentsByPost(ctx context.Context, postID string, scope Scope, opts ListOptions) ([]*model.Comment, error)
	CountCommentsByPost(ctx context.Context, postID string, scope Scope) (int64, error)
	UpdateCommentContent(ctx context.Context, id string, content string, updatedAt time.Time) error
	SetCommentDeletedAt(ctx context.Context, id string, deletedAt *time.Time) error
	DeleteComments(ctx context.Context, ids []string) error
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *CommentRepoImpl) GetComment(ctx context.Context, id string, scope Scope) (*model.Comment, error) {
	var comment model.Comment
	err := scope.apply(s.db.WithContext(ctx)).Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

// ListCommentsByPost 按创建时间获取帖子下的评论
func (s *CommentRepoImpl) ListCommentsByPost(ctx context.Context, postID string, scope Scope, opts ListOptions) ([]*model.Comment, error) {
	var comments []*model.Comment
	db := scope.apply(s.db.WithContext(ctx)).Where("post_id = ?", postID)
	err := opts.apply(db, "created_at").Find(&comments).Error
	return comments, err
}

func (s *CommentRepoImpl) CountCommentsByPost(ctx context.Context, postID string, scope Scope) (int64, error) {
	var count int64
	err := scope.apply(s.db.WithContext(ctx).Model(&model.Comment{})).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (s *CommentRepoImpl) UpdateCommentContent(ctx context.Context, id string, content string, updatedAt time.Time) error {
	return s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", id).
		Updates(map[string]any{"content": content, "updated_at": updatedAt}).Error
}

// SetCommentDeletedAt 只改写 deleted_at，删除与恢复不更新 updated_at
func (s *CommentRepoImpl) SetCommentDeletedAt(ctx context.Context, id string, deletedAt *time.Time) error {
	return s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", id).
		UpdateColumn("deleted_at", deletedAt).Error
}

func (s *CommentRepoImpl) DeleteComments(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Comment{}).Error
}
