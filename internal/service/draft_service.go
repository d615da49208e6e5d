package service

import (
	"Microblog/internal/api/dto"
	"Microblog/internal/model"
	"Microblog/internal/pkg/util"
	"Microblog/internal/repository"
	"context"
	"time"
)

type DraftService interface {
	CreateDraft(ctx context.Context, req *dto.DraftBaseDTO) (*dto.DraftDTO, error)
	GetDraft(ctx context.Context, draftID string) (*dto.DraftDTO, error)
	ListDrafts(ctx context.Context, query *dto.PageQuery) (*dto.PageDTO[*dto.DraftDTO], error)
	UpdateDraft(ctx context.Context, draftID string, req *dto.DraftBaseDTO) (*dto.DraftDTO, error)
	DeleteDraft(ctx context.Context, draftID string) error
}

type draftServiceImpl struct {
	draftRepo         repository.DraftRepo
	attachmentService AttachmentService
	now               func() time.Time
}

func NewDraftService(draftRepo repository.DraftRepo, attachmentService AttachmentService) DraftService {
	return &draftServiceImpl{
		draftRepo:         draftRepo,
		attachmentService: attachmentService,
		now:               time.Now,
	}
}

func (s *draftServiceImpl) CreateDraft(ctx context.Context, req *dto.DraftBaseDTO) (*dto.DraftDTO, error) {
	if req == nil {
		return nil, ErrParamInvalid
	}
	now := s.now().UTC()
	draft := &model.Draft{
		ID:        util.NewID(),
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.draftRepo.CreateDraft(ctx, draft); err != nil {
		return nil, err
	}
	return s.toDraftDTO(ctx, draft)
}

func (s *draftServiceImpl) GetDraft(ctx context.Context, draftID string) (*dto.DraftDTO, error) {
	draft, err := s.draftRepo.GetDraft(ctx, draftID)
	if err != nil {
		return nil, notFound(err, ErrDraftNotFound)
	}
	return s.toDraftDTO(ctx, draft)
}

// ListDrafts 默认按最后保存时间倒序
func (s *draftServiceImpl) ListDrafts(ctx context.Context, query *dto.PageQuery) (*dto.PageDTO[*dto.DraftDTO], error) {
	page, limit, desc := pageParams(query)

	total, err := s.draftRepo.CountDrafts(ctx)
	if err != nil {
		return nil, err
	}
	drafts, err := s.draftRepo.ListDrafts(ctx, repository.ListOptions{
		Limit:  limit,
		Offset: util.Offset(page, limit),
		Desc:   desc,
	})
	if err != nil {
		return nil, err
	}

	list := make([]*dto.DraftDTO, 0, len(drafts))
	for _, draft := range drafts {
		draftDTO, err := s.toDraftDTO(ctx, draft)
		if err != nil {
			return nil, err
		}
		list = append(list, draftDTO)
	}
	return &dto.PageDTO[*dto.DraftDTO]{
		List:       list,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: util.TotalPages(total, limit),
	}, nil
}

// UpdateDraft 自动保存，替换内容并刷新 updated_at
func (s *draftServiceImpl) UpdateDraft(ctx context.Context, draftID string, req *dto.DraftBaseDTO) (*dto.DraftDTO, error) {
	if req == nil {
		return nil, ErrParamInvalid
	}
	draft, err := s.draftRepo.GetDraft(ctx, draftID)
	if err != nil {
		return nil, notFound(err, ErrDraftNotFound)
	}
	now := s.now().UTC()
	if err = s.draftRepo.UpdateDraftContent(ctx, draftID, req.Content, now); err != nil {
		return nil, err
	}
	draft.Content = req.Content
	draft.UpdatedAt = now
	return s.toDraftDTO(ctx, draft)
}

// DeleteDraft 先删附件，再物理删除草稿
func (s *draftServiceImpl) DeleteDraft(ctx context.Context, draftID string) error {
	if _, err := s.draftRepo.GetDraft(ctx, draftID); err != nil {
		return notFound(err, ErrDraftNotFound)
	}
	if _, err := s.attachmentService.RemoveAttachmentsByOwner(ctx, model.AttachableDraft, draftID); err != nil {
		return err
	}
	return s.draftRepo.DeleteDraft(ctx, draftID)
}

func (s *draftServiceImpl) toDraftDTO(ctx context.Context, draft *model.Draft) (*dto.DraftDTO, error) {
	attachments, err := s.attachmentService.ListAttachments(ctx, model.AttachableDraft, draft.ID)
	if err != nil {
		return nil, err
	}
	return &dto.DraftDTO{
		ID:          draft.ID,
		Content:     draft.Content,
		CreatedAt:   draft.CreatedAt,
		UpdatedAt:   draft.UpdatedAt,
		Attachments: attachments,
	}, nil
}
