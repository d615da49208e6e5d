package service

import (
	"Microblog/internal/api/dto"
	"Microblog/internal/model"
	"Microblog/internal/pkg/util"
	"Microblog/internal/repository"
	"context"
	"time"
)

type CommentService interface {
	CreateComment(ctx context.Context, postID string, req *dto.CommentBaseDTO) (*dto.CommentDTO, error)
	GetComment(ctx context.Context, commentID string) (*dto.CommentDTO, error)
	ListComments(ctx context.Context, postID string, query *dto.PageQuery) (*dto.PageDTO[*dto.CommentDTO], error)
	UpdateComment(ctx context.Context, commentID string, req *dto.CommentBaseDTO) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, commentID string) error
}

type commentServiceImpl struct {
	commentRepo       repository.CommentRepo
	postRepo          repository.PostRepo
	reactionRepo      repository.ReactionRepo
	attachmentService AttachmentService
	now               func() time.Time
}

func NewCommentService(
	commentRepo repository.CommentRepo,
	postRepo repository.PostRepo,
	reactionRepo repository.ReactionRepo,
	attachmentService AttachmentService,
) CommentService {
	return &commentServiceImpl{
		commentRepo:       commentRepo,
		postRepo:          postRepo,
		reactionRepo:      reactionRepo,
		attachmentService: attachmentService,
		now:               time.Now,
	}
}

// CreateComment 帖子必须存在且未被删除
func (s *commentServiceImpl) CreateComment(ctx context.Context, postID string, req *dto.CommentBaseDTO) (*dto.CommentDTO, error) {
	if req == nil || req.Content == "" {
		return nil, ErrParamInvalid
	}
	if _, err := s.postRepo.GetPost(ctx, postID, repository.ScopeActive); err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}

	now := s.now().UTC()
	comment := &model.Comment{
		ID:        util.NewID(),
		PostID:    postID,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return s.toCommentDTO(ctx, comment)
}

func (s *commentServiceImpl) GetComment(ctx context.Context, commentID string) (*dto.CommentDTO, error) {
	comment, err := s.commentRepo.GetComment(ctx, commentID, repository.ScopeActive)
	if err != nil {
		return nil, notFound(err, ErrCommentNotFound)
	}
	return s.toCommentDTO(ctx, comment)
}

// ListComments 默认按创建时间升序
func (s *commentServiceImpl) ListComments(ctx context.Context, postID string, query *dto.PageQuery) (*dto.PageDTO[*dto.CommentDTO], error) {
	if _, err := s.postRepo.GetPost(ctx, postID, repository.ScopeActive); err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}

	var page, limit int
	desc := false
	if query != nil {
		page, limit = util.NormalizePage(query.Page, query.Limit)
		desc = query.Order == "desc"
	} else {
		page, limit = util.NormalizePage(0, 0)
	}

	total, err := s.commentRepo.CountCommentsByPost(ctx, postID, repository.ScopeActive)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListCommentsByPost(ctx, postID, repository.ScopeActive, repository.ListOptions{
		Limit:  limit,
		Offset: util.Offset(page, limit),
		Desc:   desc,
	})
	if err != nil {
		return nil, err
	}

	list := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		commentDTO, err := s.toCommentDTO(ctx, comment)
		if err != nil {
			return nil, err
		}
		list = append(list, commentDTO)
	}
	return &dto.PageDTO[*dto.CommentDTO]{
		List:       list,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: util.TotalPages(total, limit),
	}, nil
}

func (s *commentServiceImpl) UpdateComment(ctx context.Context, commentID string, req *dto.CommentBaseDTO) (*dto.CommentDTO, error) {
	if req == nil || req.Content == "" {
		return nil, ErrParamInvalid
	}
	comment, err := s.commentRepo.GetComment(ctx, commentID, repository.ScopeActive)
	if err != nil {
		return nil, notFound(err, ErrCommentNotFound)
	}
	now := s.now().UTC()
	if err = s.commentRepo.UpdateCommentContent(ctx, commentID, req.Content, now); err != nil {
		return nil, err
	}
	comment.Content = req.Content
	comment.UpdatedAt = now
	return s.toCommentDTO(ctx, comment)
}

// DeleteComment 软删除，评论只随帖子一起被物理清理
func (s *commentServiceImpl) DeleteComment(ctx context.Context, commentID string) error {
	if _, err := s.commentRepo.GetComment(ctx, commentID, repository.ScopeActive); err != nil {
		return notFound(err, ErrCommentNotFound)
	}
	now := s.now().UTC()
	return s.commentRepo.SetCommentDeletedAt(ctx, commentID, &now)
}

func (s *commentServiceImpl) toCommentDTO(ctx context.Context, comment *model.Comment) (*dto.CommentDTO, error) {
	attachments, err := s.attachmentService.ListAttachments(ctx, model.AttachableComment, comment.ID)
	if err != nil {
		return nil, err
	}
	reactions, err := s.reactionRepo.ListReactions(ctx, model.ReactableComment, comment.ID)
	if err != nil {
		return nil, err
	}
	return &dto.CommentDTO{
		ID:          comment.ID,
		PostID:      comment.PostID,
		Content:     comment.Content,
		CreatedAt:   comment.CreatedAt,
		UpdatedAt:   comment.UpdatedAt,
		Attachments: attachments,
		Reactions:   AggregateReactions(reactions),
	}, nil
}
