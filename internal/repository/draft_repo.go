package repository

import (
	"Microblog/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type DraftRepo interface {
	CreateDraft(ctx context.Context, draft *model.Draft) error
	GetDraft(ctx context.Context, id string) (*model.Draft, error)
	ListDrafts(ctx context.Context, opts ListOptions) ([]*model.Draft, error)
	CountDrafts(ctx context.Context) (int64, error)
	UpdateDraftContent(ctx context.Context, id string, content string, updatedAt time.Time) error
	GetDraftsUpdatedBefore(ctx context.Context, cutoff time.Time) ([]*model.Draft, error)
	DeleteDraft(ctx context.Context, id string) error
}

type DraftRepoImpl struct {
	db *gorm.DB
}

func NewDraftRepo(db *gorm.DB) DraftRepo {
	return &DraftRepoImpl{db: db}
}

func (s *DraftRepoImpl) CreateDraft(ctx context.Context, draft *model.Draft) error {
	return s.db.WithContext(ctx).Create(draft).Error
}

func (s *DraftRepoImpl) GetDraft(ctx context.Context, id string) (*model.Draft, error) {
	var draft model.Draft
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&draft).Error; err != nil {
		return nil, translate(err)
	}
	return &draft, nil
}

func (s *DraftRepoImpl) ListDrafts(ctx context.Context, opts ListOptions) ([]*model.Draft, error) {
	var drafts []*model.Draft
	err := opts.apply(s.db.WithContext(ctx), "updated_at").Find(&drafts).Error
	return drafts, err
}

func (s *DraftRepoImpl) CountDrafts(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Draft{}).Count(&count).Error
	return count, err
}

func (s *DraftRepoImpl) UpdateDraftContent(ctx context.Context, id string, content string, updatedAt time.Time) error {
	return s.db.WithContext(ctx).Model(&model.Draft{}).
		Where("id = ?", id).
		Updates(map[string]any{"content": content, "updated_at": updatedAt}).Error
}

func (s *DraftRepoImpl) GetDraftsUpdatedBefore(ctx context.Context, cutoff time.Time) ([]*model.Draft, error) {
	var drafts []*model.Draft
	err := s.db.WithContext(ctx).
		Where("updated_at < ?", cutoff).
		Order("updated_at ASC").
		Find(&drafts).Error
	return drafts, err
}

func (s *DraftRepoImpl) DeleteDraft(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Draft{}).Error
}
