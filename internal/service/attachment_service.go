package service

import (
	"Microblog/internal/api/dto"
	"Microblog/internal/model"
	"Microblog/internal/pkg/consts"
	"Microblog/internal/pkg/event"
	"Microblog/internal/pkg/storage"
	"Microblog/internal/pkg/util"
	"Microblog/internal/repository"
	"context"
	"errors"
	"io"
	log "log/slog"
	"path"
	"strings"
	"time"

	"github.com/jinzhu/copier"
)

// AttachmentUpload 上传的文件及其归属
type AttachmentUpload struct {
	Reader         io.ReadSeeker
	FileName       string
	FileSize       int64
	AttachableType string
	AttachableID   string
	Category       string
}

type AttachmentService interface {
	CreateAttachment(ctx context.Context, upload *AttachmentUpload) (*dto.AttachmentDTO, error)
	GetAttachment(ctx context.Context, id string) (*dto.AttachmentDTO, error)
	ListAttachments(ctx context.Context, attachableType, attachableID string) ([]*dto.AttachmentDTO, error)
	UpdateOwnership(ctx context.Context, id string, attachableType, attachableID string) (*dto.AttachmentDTO, error)
	RemoveAttachment(ctx context.Context, id string) error
	RemoveAttachmentsByOwner(ctx context.Context, attachableType, attachableID string) (int, error)
	ReparentAttachments(ctx context.Context, fromType, fromID, toType, toID string) (int, error)
}

type attachmentServiceImpl struct {
	attachmentRepo repository.AttachmentRepo
	postRepo       repository.PostRepo
	draftRepo      repository.DraftRepo
	commentRepo    repository.CommentRepo
	store          storage.FileStore
	publisher      event.Publisher[event.AttachmentCreated]
	maxSize        int64
	now            func() time.Time
}

func NewAttachmentService(
	attachmentRepo repository.AttachmentRepo,
	postRepo repository.PostRepo,
	draftRepo repository.DraftRepo,
	commentRepo repository.CommentRepo,
	store storage.FileStore,
	publisher event.Publisher[event.AttachmentCreated],
	maxSize int64,
) AttachmentService {
	return &attachmentServiceImpl{
		attachmentRepo: attachmentRepo,
		postRepo:       postRepo,
		draftRepo:      draftRepo,
		commentRepo:    commentRepo,
		store:          store,
		publisher:      publisher,
		maxSize:        maxSize,
		now:            time.Now,
	}
}

// CreateAttachment 保存文件并落库，成功后发布附件创建事件
func (s *attachmentServiceImpl) CreateAttachment(ctx context.Context, upload *AttachmentUpload) (*dto.AttachmentDTO, error) {
	if upload == nil || upload.Reader == nil {
		return nil, ErrParamInvalid
	}
	fileName := path.Base(strings.ReplaceAll(upload.FileName, "\\", "/"))
	if fileName == "" || fileName == "." || fileName == "/" {
		return nil, ErrParamInvalid
	}
	category := upload.Category
	if category == "" {
		category = model.CategoryAttachment
	}
	if !validCategory(category) {
		return nil, ErrParamInvalid
	}
	if s.maxSize > 0 && upload.FileSize > s.maxSize {
		return nil, ErrFileTooLarge
	}
	if err := s.checkOwner(ctx, upload.AttachableType, upload.AttachableID); err != nil {
		return nil, err
	}

	mimeType, err := util.GetSafeContentType(upload.Reader)
	if err != nil {
		return nil, err
	}
	// 相册与内嵌图片只接受图片
	if category != model.CategoryAttachment && !strings.HasPrefix(mimeType, consts.MimePrefixImage) {
		return nil, ErrFileNotSupported
	}

	now := s.now().UTC()
	filePath := util.NewObjectName(now, fileName)
	if err = s.store.Save(ctx, filePath, upload.Reader, upload.FileSize, mimeType); err != nil {
		return nil, err
	}

	attachment := &model.Attachment{
		ID:             util.NewID(),
		AttachableType: upload.AttachableType,
		AttachableID:   upload.AttachableID,
		Category:       category,
		FileName:       fileName,
		FilePath:       filePath,
		FileSize:       upload.FileSize,
		MimeType:       mimeType,
		CreatedAt:      now,
	}
	if err = s.attachmentRepo.CreateAttachment(ctx, attachment); err != nil {
		if rmErr := s.store.Remove(ctx, filePath); rmErr != nil {
			log.WarnContext(ctx, "remove orphan file failed", "path", filePath, "err", rmErr)
		}
		return nil, err
	}

	s.publisher.Publish(ctx, event.AttachmentCreated{AttachmentID: attachment.ID})
	return toAttachmentDTO(attachment), nil
}

func (s *attachmentServiceImpl) GetAttachment(ctx context.Context, id string) (*dto.AttachmentDTO, error) {
	attachment, err := s.attachmentRepo.GetAttachment(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrAttachmentNotFound)
	}
	return toAttachmentDTO(attachment), nil
}

// ListAttachments 按创建时间升序
func (s *attachmentServiceImpl) ListAttachments(ctx context.Context, attachableType, attachableID string) ([]*dto.AttachmentDTO, error) {
	attachments, err := s.attachmentRepo.ListAttachmentsByOwner(ctx, attachableType, attachableID)
	if err != nil {
		return nil, err
	}
	return toAttachmentDTOs(attachments), nil
}

// UpdateOwnership 只改写归属字段，其余元数据保持不变
func (s *attachmentServiceImpl) UpdateOwnership(ctx context.Context, id string, attachableType, attachableID string) (*dto.AttachmentDTO, error) {
	attachment, err := s.attachmentRepo.GetAttachment(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrAttachmentNotFound)
	}
	if err = s.checkOwner(ctx, attachableType, attachableID); err != nil {
		return nil, err
	}
	if err = s.attachmentRepo.UpdateAttachmentOwner(ctx, id, attachableType, attachableID); err != nil {
		return nil, err
	}
	attachment.AttachableType = attachableType
	attachment.AttachableID = attachableID
	return toAttachmentDTO(attachment), nil
}

func (s *attachmentServiceImpl) RemoveAttachment(ctx context.Context, id string) error {
	attachment, err := s.attachmentRepo.GetAttachment(ctx, id)
	if err != nil {
		return notFound(err, ErrAttachmentNotFound)
	}
	return s.remove(ctx, attachment)
}

// RemoveAttachmentsByOwner 删除归属对象的全部附件，返回删除数量
func (s *attachmentServiceImpl) RemoveAttachmentsByOwner(ctx context.Context, attachableType, attachableID string) (int, error) {
	attachments, err := s.attachmentRepo.ListAttachmentsByOwner(ctx, attachableType, attachableID)
	if err != nil {
		return 0, err
	}
	for i, attachment := range attachments {
		if err = s.remove(ctx, attachment); err != nil {
			return i, err
		}
	}
	return len(attachments), nil
}

// ReparentAttachments 草稿发布时把附件转移到新帖子
func (s *attachmentServiceImpl) ReparentAttachments(ctx context.Context, fromType, fromID, toType, toID string) (int, error) {
	attachments, err := s.attachmentRepo.ListAttachmentsByOwner(ctx, fromType, fromID)
	if err != nil {
		return 0, err
	}
	for i, attachment := range attachments {
		if err = s.attachmentRepo.UpdateAttachmentOwner(ctx, attachment.ID, toType, toID); err != nil {
			return i, err
		}
	}
	return len(attachments), nil
}

// remove 先删文件再删记录，文件缺失不视为错误
func (s *attachmentServiceImpl) remove(ctx context.Context, attachment *model.Attachment) error {
	s.removeFile(ctx, attachment.ID, attachment.FilePath)
	if attachment.ThumbnailPath != nil {
		s.removeFile(ctx, attachment.ID, *attachment.ThumbnailPath)
	}
	return s.attachmentRepo.DeleteAttachment(ctx, attachment.ID)
}

func (s *attachmentServiceImpl) removeFile(ctx context.Context, attachmentID, name string) {
	if err := s.store.Remove(ctx, name); err != nil {
		log.WarnContext(ctx, "remove attachment file failed", "attachment_id", attachmentID, "path", name, "err", err)
	}
}

// checkOwner 归属对象必须存在，帖子与评论必须未被删除
func (s *attachmentServiceImpl) checkOwner(ctx context.Context, attachableType, attachableID string) error {
	if len(attachableID) != util.IDLength {
		return ErrAttachableInvalid
	}
	var err error
	switch attachableType {
	case model.AttachablePost:
		_, err = s.postRepo.GetPost(ctx, attachableID, repository.ScopeActive)
	case model.AttachableDraft:
		_, err = s.draftRepo.GetDraft(ctx, attachableID)
	case model.AttachableComment:
		_, err = s.commentRepo.GetComment(ctx, attachableID, repository.ScopeActive)
	default:
		return ErrAttachableInvalid
	}
	if errors.Is(err, repository.ErrNotFound) {
		return ErrAttachableInvalid
	}
	return err
}

func validCategory(category string) bool {
	switch category {
	case model.CategoryGallery, model.CategoryInline, model.CategoryAttachment:
		return true
	}
	return false
}

func toAttachmentDTO(attachment *model.Attachment) *dto.AttachmentDTO {
	var out dto.AttachmentDTO
	_ = copier.Copy(&out, attachment)
	return &out
}

func toAttachmentDTOs(attachments []*model.Attachment) []*dto.AttachmentDTO {
	out := make([]*dto.AttachmentDTO, 0, len(attachments))
	for _, attachment := range attachments {
		out = append(out, toAttachmentDTO(attachment))
	}
	return out
}
