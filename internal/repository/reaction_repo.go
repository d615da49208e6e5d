package repository

import (
	"Microblog/internal/model"
	"context"

	"gorm.io/gorm"
)

type ReactionRepo interface {
	CreateReaction(ctx context.Context, reaction *model.Reaction) error
	GetReaction(ctx context.Context, id string) (*model.Reaction, error)
	ListReactions(ctx context.Context, reactableType, reactableID string) ([]*model.Reaction, error)
	DeleteReaction(ctx context.Context, id string) error
	DeleteReactionsByTarget(ctx context.Context, reactableType, reactableID string) (int64, error)
}

type ReactionRepoImpl struct {
	db *gorm.DB
}

func NewReactionRepo(db *gorm.DB) ReactionRepo {
	return &ReactionRepoImpl{db: db}
}

func (s *ReactionRepoImpl) CreateReaction(ctx context.Context, reaction *model.Reaction) error {
	return s.db.WithContext(ctx).Create(reaction).Error
}

func (s *ReactionRepoImpl) GetReaction(ctx context.Context, id string) (*model.Reaction, error) {
	var reaction model.Reaction
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&reaction).Error; err != nil {
		return nil, translate(err)
	}
	return &reaction, nil
}

func (s *ReactionRepoImpl) ListReactions(ctx context.Context, reactableType, reactableID string) ([]*model.Reaction, error) {
	var reactions []*model.Reaction
	err := s.db.WithContext(ctx).
		Where("reactable_type = ? AND reactable_id = ?", reactableType, reactableID).
		Order("created_at ASC").Order("id ASC").
		Find(&reactions).Error
	return reactions, err
}

func (s *ReactionRepoImpl) DeleteReaction(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Reaction{}).Error
}

func (s *ReactionRepoImpl) DeleteReactionsByTarget(ctx context.Context, reactableType, reactableID string) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("reactable_type = ? AND reactable_id = ?", reactableType, reactableID).
		Delete(&model.Reaction{})
	return res.RowsAffected, res.Error
}
