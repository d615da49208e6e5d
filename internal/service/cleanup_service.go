package service

import (
	"Microblog/internal/model"
	"Microblog/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// CleanupService 回收站与过期草稿的定时清理，两个清理都可重复执行
type CleanupService interface {
	PurgeStaleDrafts(ctx context.Context, now time.Time) (int, error)
	PurgeExpiredTrash(ctx context.Context, now time.Time) (int, error)
}

type cleanupServiceImpl struct {
	postRepo          repository.PostRepo
	draftRepo         repository.DraftRepo
	commentRepo       repository.CommentRepo
	reactionRepo      repository.ReactionRepo
	attachmentService AttachmentService
	grace             time.Duration
}

func NewCleanupService(
	postRepo repository.PostRepo,
	draftRepo repository.DraftRepo,
	commentRepo repository.CommentRepo,
	reactionRepo repository.ReactionRepo,
	attachmentService AttachmentService,
	graceDays int,
) CleanupService {
	if graceDays <= 0 {
		graceDays = DefaultGraceDays
	}
	return &cleanupServiceImpl{
		postRepo:          postRepo,
		draftRepo:         draftRepo,
		commentRepo:       commentRepo,
		reactionRepo:      reactionRepo,
		attachmentService: attachmentService,
		grace:             time.Duration(graceDays) * 24 * time.Hour,
	}
}

// PurgeStaleDrafts 删除超过保留期未更新的草稿及其附件
func (s *cleanupServiceImpl) PurgeStaleDrafts(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.Add(-s.grace)
	drafts, err := s.draftRepo.GetDraftsUpdatedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	for i, draft := range drafts {
		if _, err = s.attachmentService.RemoveAttachmentsByOwner(ctx, model.AttachableDraft, draft.ID); err != nil {
			return i, err
		}
		if err = s.draftRepo.DeleteDraft(ctx, draft.ID); err != nil {
			return i, err
		}
	}

	log.InfoContext(ctx, "stale drafts purged", "count", len(drafts), "cutoff", cutoff)
	return len(drafts), nil
}

// PurgeExpiredTrash 物理删除超过保留期的已删除帖子
// 每个帖子按 评论附件与互动 -> 评论 -> 帖子附件 -> 帖子互动 的顺序清理，最后批量删除帖子
func (s *cleanupServiceImpl) PurgeExpiredTrash(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.Add(-s.grace)
	posts, err := s.postRepo.GetTrashedPostsBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if len(posts) == 0 {
		log.InfoContext(ctx, "expired trash purged", "count", 0, "cutoff", cutoff)
		return 0, nil
	}

	ids := make([]string, 0, len(posts))
	for _, post := range posts {
		if err = s.purgePostChildren(ctx, post.ID); err != nil {
			return 0, err
		}
		ids = append(ids, post.ID)
	}
	if err = s.postRepo.DeletePosts(ctx, ids); err != nil {
		return 0, err
	}

	log.InfoContext(ctx, "expired trash purged", "count", len(ids), "cutoff", cutoff)
	return len(ids), nil
}

func (s *cleanupServiceImpl) purgePostChildren(ctx context.Context, postID string) error {
	comments, err := s.commentRepo.ListCommentsByPost(ctx, postID, repository.ScopeAll, repository.ListOptions{})
	if err != nil {
		return err
	}

	commentIDs := make([]string, 0, len(comments))
	for _, comment := range comments {
		if _, err = s.attachmentService.RemoveAttachmentsByOwner(ctx, model.AttachableComment, comment.ID); err != nil {
			return err
		}
		if _, err = s.reactionRepo.DeleteReactionsByTarget(ctx, model.ReactableComment, comment.ID); err != nil {
			return err
		}
		commentIDs = append(commentIDs, comment.ID)
	}
	if len(commentIDs) > 0 {
		if err = s.commentRepo.DeleteComments(ctx, commentIDs); err != nil {
			return err
		}
	}

	if _, err = s.attachmentService.RemoveAttachmentsByOwner(ctx, model.AttachablePost, postID); err != nil {
		return err
	}
	_, err = s.reactionRepo.DeleteReactionsByTarget(ctx, model.ReactablePost, postID)
	return err
}
