package service

import (
	"Microblog/internal/pkg/consts"
	"Microblog/internal/pkg/event"
	"Microblog/internal/pkg/imageproc"
	"Microblog/internal/pkg/logger"
	"Microblog/internal/pkg/storage"
	"Microblog/internal/repository"
	"bytes"
	"context"
	"errors"
	log "log/slog"
	"path"
	"strings"
)

const (
	DefaultThumbnailWidth = 400
	DefaultThumbnailDir   = "thumbnails"
)

type ThumbnailService interface {
	GenerateThumbnail(ctx context.Context, attachmentID string) error
	HandleAttachmentCreated(ctx context.Context, evt event.AttachmentCreated)
}

type thumbnailServiceImpl struct {
	attachmentRepo repository.AttachmentRepo
	store          storage.FileStore
	resizer        imageproc.Resizer
	width          int
	dir            string
}

func NewThumbnailService(attachmentRepo repository.AttachmentRepo, store storage.FileStore, resizer imageproc.Resizer, width int, dir string) ThumbnailService {
	if width <= 0 {
		width = DefaultThumbnailWidth
	}
	if dir == "" {
		dir = DefaultThumbnailDir
	}
	return &thumbnailServiceImpl{
		attachmentRepo: attachmentRepo,
		store:          store,
		resizer:        resizer,
		width:          width,
		dir:            dir,
	}
}

// GenerateThumbnail 为图片附件生成缩略图，附件已不存在或不是图片时直接返回
func (s *thumbnailServiceImpl) GenerateThumbnail(ctx context.Context, attachmentID string) error {
	attachment, err := s.attachmentRepo.GetAttachment(ctx, attachmentID)
	if errors.Is(err, repository.ErrNotFound) {
		log.DebugContext(ctx, "attachment gone before thumbnail", "attachment_id", attachmentID)
		return nil
	}
	if err != nil {
		return err
	}
	if !strings.HasPrefix(attachment.MimeType, consts.MimePrefixImage) {
		return nil
	}

	src, err := s.store.Open(ctx, attachment.FilePath)
	if err != nil {
		return err
	}
	defer src.Close()

	var buf bytes.Buffer
	format, err := s.resizer.Resize(src, &buf, s.width)
	if err != nil {
		return err
	}

	thumbnailPath := imageproc.ThumbnailName(path.Join(s.dir, attachment.FilePath), format)
	if err = s.store.Save(ctx, thumbnailPath, &buf, int64(buf.Len()), imageproc.ContentType(format)); err != nil {
		return err
	}
	if err = s.attachmentRepo.UpdateAttachmentThumbnail(ctx, attachment.ID, thumbnailPath); err != nil {
		if rmErr := s.store.Remove(ctx, thumbnailPath); rmErr != nil {
			log.WarnContext(ctx, "remove orphan thumbnail failed", "path", thumbnailPath, "err", rmErr)
		}
		return err
	}
	return nil
}

// HandleAttachmentCreated 事件总线回调，失败只记录日志，不重试
func (s *thumbnailServiceImpl) HandleAttachmentCreated(ctx context.Context, evt event.AttachmentCreated) {
	ctx = logger.WithTrace(ctx, "event-thumbnail")
	if err := s.GenerateThumbnail(ctx, evt.AttachmentID); err != nil {
		log.ErrorContext(ctx, "generate thumbnail failed", "attachment_id", evt.AttachmentID, "err", err)
		return
	}
	log.DebugContext(ctx, "thumbnail handled", "attachment_id", evt.AttachmentID)
}
