package repository

import (
	"Microblog/internal/model"
	"context"

	"gorm.io/gorm"
)

type AttachmentRepo interface {
	CreateAttachment(ctx context.Context, attachment *model.Attachment) error
	GetAttachment(ctx context.Context, id string) (*model.Attachment, error)
	ListAttachmentsByOwner(ctx context.Context, attachableType, attachableID string) ([]*model.Attachment, error)
	UpdateAttachmentOwner(ctx context.Context, id string, attachableType, attachableID string) error
	UpdateAttachmentThumbnail(ctx context.Context, id string, thumbnailPath string) error
	DeleteAttachment(ctx context.Context, id string) error
}

type AttachmentRepoImpl struct {
	db *gorm.DB
}

func NewAttachmentRepo(db *gorm.DB) AttachmentRepo {
	return &AttachmentRepoImpl{db: db}
}

func (s *AttachmentRepoImpl) CreateAttachment(ctx context.Context, attachment *model.Attachment) error {
	return s.db.WithContext(ctx).Create(attachment).Error
}

func (s *AttachmentRepoImpl) GetAttachment(ctx context.Context, id string) (*model.Attachment, error) {
	var attachment model.Attachment
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&attachment).Error; err != nil {
		return nil, translate(err)
	}
	return &attachment, nil
}

func (s *AttachmentRepoImpl) ListAttachmentsByOwner(ctx context.Context, attachableType, attachableID string) ([]*model.Attachment, error) {
	var attachments []*model.Attachment
	err := s.db.WithContext(ctx).
		Where("attachable_type = ? AND attachable_id = ?", attachableType, attachableID).
		Order("created_at ASC").Order("id ASC").
		Find(&attachments).Error
	return attachments, err
}

// UpdateAttachmentOwner 只改写归属字段
func (s *AttachmentRepoImpl) UpdateAttachmentOwner(ctx context.Context, id string, attachableType, attachableID string) error {
	return s.db.WithContext(ctx).Model(&model.Attachment{}).
		Where("id = ?", id).
		Updates(map[string]any{"attachable_type": attachableType, "attachable_id": attachableID}).Error
}

func (s *AttachmentRepoImpl) UpdateAttachmentThumbnail(ctx context.Context, id string, thumbnailPath string) error {
	return s.db.WithContext(ctx).Model(&model.Attachment{}).
		Where("id = ?", id).
		Update("thumbnail_path", thumbnailPath).Error
}

func (s *AttachmentRepoImpl) DeleteAttachment(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Attachment{}).Error
}
