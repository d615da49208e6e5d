package service

import (
	"Microblog/internal/api/dto"
	"Microblog/internal/model"
	"Microblog/internal/pkg/render"
	"Microblog/internal/pkg/util"
	"Microblog/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"sort"
	"time"
)

const (
	// DefaultGraceDays 回收站保留天数
	DefaultGraceDays = 3

	ExportMarkdown = "markdown"
	ExportHTML     = "html"
)

type PostService interface {
	CreatePost(ctx context.Context, req *dto.PostBaseDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, postID string) (*dto.PostDTO, error)
	ListPosts(ctx context.Context, query *dto.PageQuery) (*dto.PageDTO[*dto.PostDTO], error)
	UpdatePost(ctx context.Context, postID string, req *dto.PostBaseDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, postID string) error
	FindTrashed(ctx context.Context) ([]*dto.TrashedPostDTO, error)
	RestorePost(ctx context.Context, postID string) (*dto.PostDTO, error)
	ExportPost(ctx context.Context, postID string, format string) (*dto.ExportDTO, error)
}

type postServiceImpl struct {
	postRepo          repository.PostRepo
	reactionRepo      repository.ReactionRepo
	attachmentService AttachmentService
	graceDays         int
	now               func() time.Time
}

func NewPostService(
	postRepo repository.PostRepo,
	reactionRepo repository.ReactionRepo,
	attachmentService AttachmentService,
	graceDays int,
) PostService {
	if graceDays <= 0 {
		graceDays = DefaultGraceDays
	}
	return &postServiceImpl{
		postRepo:          postRepo,
		reactionRepo:      reactionRepo,
		attachmentService: attachmentService,
		graceDays:         graceDays,
		now:               time.Now,
	}
}

// CreatePost 发布帖子，携带草稿 id 时把草稿附件转到新帖子并删除草稿
func (s *postServiceImpl) CreatePost(ctx context.Context, req *dto.PostBaseDTO) (*dto.PostDTO, error) {
	if req == nil {
		return nil, ErrParamInvalid
	}
	now := s.now().UTC()
	post := &model.Post{
		ID:        util.NewID(),
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.DraftID == nil {
		if err := s.postRepo.CreatePost(ctx, post); err != nil {
			return nil, err
		}
		return s.toPostDTO(ctx, post)
	}

	// 草稿发布：建帖、附件转移、删草稿在仓储层原子完成，失败时草稿保持原样可重试
	moved, err := s.postRepo.PublishDraft(ctx, post, *req.DraftID)
	if err != nil {
		return nil, notFound(err, ErrDraftNotFound)
	}
	log.InfoContext(ctx, "draft published", "draft_id", *req.DraftID, "post_id", post.ID, "attachments", moved)

	return s.toPostDTO(ctx, post)
}

func (s *postServiceImpl) GetPost(ctx context.Context, postID string) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID, repository.ScopeActive)
	if err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}
	return s.toPostDTO(ctx, post)
}

// ListPosts 默认按创建时间倒序
func (s *postServiceImpl) ListPosts(ctx context.Context, query *dto.PageQuery) (*dto.PageDTO[*dto.PostDTO], error) {
	page, limit, desc := pageParams(query)

	total, err := s.postRepo.CountPosts(ctx, repository.ScopeActive)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.ListPosts(ctx, repository.ScopeActive, repository.ListOptions{
		Limit:  limit,
		Offset: util.Offset(page, limit),
		Desc:   desc,
	})
	if err != nil {
		return nil, err
	}

	list := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		postDTO, err := s.toPostDTO(ctx, post)
		if err != nil {
			return nil, err
		}
		list = append(list, postDTO)
	}

	return &dto.PageDTO[*dto.PostDTO]{
		List:       list,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: util.TotalPages(total, limit),
	}, nil
}

// UpdatePost 全量替换内容
func (s *postServiceImpl) UpdatePost(ctx context.Context, postID string, req *dto.PostBaseDTO) (*dto.PostDTO, error) {
	if req == nil {
		return nil, ErrParamInvalid
	}
	post, err := s.postRepo.GetPost(ctx, postID, repository.ScopeActive)
	if err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}

	now := s.now().UTC()
	if err = s.postRepo.UpdatePostContent(ctx, postID, req.Content, now); err != nil {
		return nil, err
	}
	post.Content = req.Content
	post.UpdatedAt = now
	return s.toPostDTO(ctx, post)
}

// DeletePost 软删除，进入回收站
func (s *postServiceImpl) DeletePost(ctx context.Context, postID string) error {
	if _, err := s.postRepo.GetPost(ctx, postID, repository.ScopeActive); err != nil {
		return notFound(err, ErrPostNotFound)
	}
	now := s.now().UTC()
	return s.postRepo.SetPostDeletedAt(ctx, postID, &now)
}

// FindTrashed 回收站列表，最近删除的在前
func (s *postServiceImpl) FindTrashed(ctx context.Context) ([]*dto.TrashedPostDTO, error) {
	posts, err := s.postRepo.ListPosts(ctx, repository.ScopeTrashed, repository.ListOptions{Desc: true})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].State().Since().After(posts[j].State().Since())
	})

	now := s.now()
	out := make([]*dto.TrashedPostDTO, 0, len(posts))
	for _, post := range posts {
		since := post.State().Since()
		out = append(out, &dto.TrashedPostDTO{
			ID:            post.ID,
			Content:       post.Content,
			CreatedAt:     post.CreatedAt,
			UpdatedAt:     post.UpdatedAt,
			DeletedAt:     since,
			DaysRemaining: DaysRemaining(since, now, s.graceDays),
		})
	}
	return out, nil
}

// RestorePost 清除删除标记，帖子不存在或未被删除时返回 ErrPostNotFound
func (s *postServiceImpl) RestorePost(ctx context.Context, postID string) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID, repository.ScopeTrashed)
	if err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}
	if err = s.postRepo.SetPostDeletedAt(ctx, postID, nil); err != nil {
		return nil, err
	}
	post.DeletedAt = nil
	return s.toPostDTO(ctx, post)
}

// ExportPost 将帖子内容导出为 Markdown 或 HTML
func (s *postServiceImpl) ExportPost(ctx context.Context, postID string, format string) (*dto.ExportDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID, repository.ScopeActive)
	if err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}

	var content string
	switch format {
	case "", ExportMarkdown:
		format = ExportMarkdown
		content, err = render.ToMarkdown(post.Content)
	case ExportHTML:
		content, err = render.ToHTML(post.Content)
	default:
		return nil, ErrParamInvalid
	}
	if errors.Is(err, render.ErrInvalidContent) {
		return nil, ErrInvalidContent
	}
	if err != nil {
		return nil, err
	}
	return &dto.ExportDTO{Format: format, Content: content}, nil
}

func (s *postServiceImpl) toPostDTO(ctx context.Context, post *model.Post) (*dto.PostDTO, error) {
	attachments, err := s.attachmentService.ListAttachments(ctx, model.AttachablePost, post.ID)
	if err != nil {
		return nil, err
	}
	reactions, err := s.reactionRepo.ListReactions(ctx, model.ReactablePost, post.ID)
	if err != nil {
		return nil, err
	}
	return &dto.PostDTO{
		ID:          post.ID,
		Content:     post.Content,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
		Attachments: attachments,
		Reactions:   AggregateReactions(reactions),
	}, nil
}

// DaysRemaining 回收站剩余天数 max(0, grace - floor((now - deletedAt) / 24h))
func DaysRemaining(deletedAt, now time.Time, graceDays int) int {
	elapsed := now.Sub(deletedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return max(0, graceDays-int(elapsed/(24*time.Hour)))
}

func pageParams(query *dto.PageQuery) (page, limit int, desc bool) {
	desc = true
	if query == nil {
		page, limit = util.NormalizePage(0, 0)
		return page, limit, desc
	}
	page, limit = util.NormalizePage(query.Page, query.Limit)
	if query.Order == "asc" {
		desc = false
	}
	return page, limit, desc
}
