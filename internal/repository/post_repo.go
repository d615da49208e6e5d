package repository

import (
	"Microblog/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id string, scope Scope) (*model.Post, error)
	ListPosts(ctx context.Context, scope Scope, opts ListOptions) ([]*model.Post, error)
	CountPosts(ctx context.Context, scope Scope) (int64, error)
	UpdatePostContent(ctx context.Context, id string, content string, updatedAt time.Time) error
	SetPostDeletedAt(ctx context.Context, id string, deletedAt *time.Time) error
	GetTrashedPostsBefore(ctx context.Context, cutoff time.Time) ([]*model.Post, error)
	DeletePosts(ctx context.Context, ids []string) error
	PublishDraft(ctx context.Context, post *model.Post, draftID string) (int64, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *PostRepoImpl) GetPost(ctx context.Context, id string, scope Scope) (*model.Post, error) {
	var post model.Post
	err := scope.apply(s.db.WithContext(ctx)).Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (s *PostRepoImpl) ListPosts(ctx context.Context, scope Scope, opts ListOptions) ([]*model.Post, error) {
	var posts []*model.Post
	err := opts.apply(scope.apply(s.db.WithContext(ctx)), "created_at").Find(&posts).Error
	return posts, err
}

func (s *PostRepoImpl) CountPosts(ctx context.Context, scope Scope) (int64, error) {
	var count int64
	err := scope.apply(s.db.WithContext(ctx).Model(&model.Post{})).Count(&count).Error
	return count, err
}

func (s *PostRepoImpl) UpdatePostContent(ctx context.Context, id string, content string, updatedAt time.Time) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{"content": content, "updated_at": updatedAt}).Error
}

// SetPostDeletedAt 只改写 deleted_at，删除与恢复不更新 updated_at
func (s *PostRepoImpl) SetPostDeletedAt(ctx context.Context, id string, deletedAt *time.Time) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("deleted_at", deletedAt).Error
}

// GetTrashedPostsBefore 查询 deleted_at 早于 cutoff 的已删除帖子
func (s *PostRepoImpl) GetTrashedPostsBefore(ctx context.Context, cutoff time.Time) ([]*model.Post, error) {
	var posts []*model.Post
	err := ScopeTrashed.apply(s.db.WithContext(ctx)).
		Where("deleted_at < ?", cutoff).
		Order("deleted_at ASC").
		Find(&posts).Error
	return posts, err
}

func (s *PostRepoImpl) DeletePosts(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Post{}).Error
}

// PublishDraft 同一事务内创建帖子、转移草稿附件并删除草稿，草稿已不存在时回滚并返回 ErrNotFound
func (s *PostRepoImpl) PublishDraft(ctx context.Context, post *model.Post, draftID string) (int64, error) {
	var moved int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		res := tx.Model(&model.Attachment{}).
			Where("attachable_type = ? AND attachable_id = ?", model.AttachableDraft, draftID).
			Updates(map[string]any{"attachable_type": model.AttachablePost, "attachable_id": post.ID})
		if res.Error != nil {
			return res.Error
		}
		moved = res.RowsAffected

		res = tx.Where("id = ?", draftID).Delete(&model.Draft{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}
