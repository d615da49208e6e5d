package service

import (
	"Microblog/internal/api/dto"
	"Microblog/internal/model"
	"Microblog/internal/pkg/util"
	"Microblog/internal/repository"
	"context"
	"strings"
	"time"

	"github.com/jinzhu/copier"
)

type ReactionService interface {
	CreateReaction(ctx context.Context, req *dto.ReactionCreateDTO) (*dto.ReactionDTO, error)
	RemoveReaction(ctx context.Context, reactionID string) error
	ListReactions(ctx context.Context, reactableType, reactableID string) ([]*dto.ReactionSummaryDTO, error)
}

type reactionServiceImpl struct {
	reactionRepo repository.ReactionRepo
	postRepo     repository.PostRepo
	commentRepo  repository.CommentRepo
	now          func() time.Time
}

func NewReactionService(reactionRepo repository.ReactionRepo, postRepo repository.PostRepo, commentRepo repository.CommentRepo) ReactionService {
	return &reactionServiceImpl{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		now:          time.Now,
	}
}

// CreateReaction 目标必须存在且未被删除，同一 emoji 允许重复
func (s *reactionServiceImpl) CreateReaction(ctx context.Context, req *dto.ReactionCreateDTO) (*dto.ReactionDTO, error) {
	if req == nil {
		return nil, ErrParamInvalid
	}
	emoji := strings.TrimSpace(req.Emoji)
	if emoji == "" {
		return nil, ErrParamInvalid
	}
	if err := s.checkTarget(ctx, req.ReactableType, req.ReactableID); err != nil {
		return nil, err
	}

	reaction := &model.Reaction{
		ID:            util.NewID(),
		ReactableType: req.ReactableType,
		ReactableID:   req.ReactableID,
		Emoji:         emoji,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.reactionRepo.CreateReaction(ctx, reaction); err != nil {
		return nil, err
	}

	var out dto.ReactionDTO
	_ = copier.Copy(&out, reaction)
	return &out, nil
}

func (s *reactionServiceImpl) RemoveReaction(ctx context.Context, reactionID string) error {
	if _, err := s.reactionRepo.GetReaction(ctx, reactionID); err != nil {
		return notFound(err, ErrReactionNotFound)
	}
	return s.reactionRepo.DeleteReaction(ctx, reactionID)
}

// ListReactions 返回按 emoji 聚合后的结果
func (s *reactionServiceImpl) ListReactions(ctx context.Context, reactableType, reactableID string) ([]*dto.ReactionSummaryDTO, error) {
	if reactableType != model.ReactablePost && reactableType != model.ReactableComment {
		return nil, ErrReactableInvalid
	}
	reactions, err := s.reactionRepo.ListReactions(ctx, reactableType, reactableID)
	if err != nil {
		return nil, err
	}
	return AggregateReactions(reactions), nil
}

func (s *reactionServiceImpl) checkTarget(ctx context.Context, reactableType, reactableID string) error {
	switch reactableType {
	case model.ReactablePost:
		_, err := s.postRepo.GetPost(ctx, reactableID, repository.ScopeActive)
		return notFound(err, ErrPostNotFound)
	case model.ReactableComment:
		_, err := s.commentRepo.GetComment(ctx, reactableID, repository.ScopeActive)
		return notFound(err, ErrCommentNotFound)
	default:
		return ErrReactableInvalid
	}
}
