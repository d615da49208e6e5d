package handler

import (
	"Microblog/internal/api/dto"
	"Microblog/internal/pkg/response"
	"Microblog/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// multipartOverhead 表单字段与边界的额外空间
const multipartOverhead = 1 << 20

type AttachmentHandler struct {
	attachmentSvc service.AttachmentService
	maxSize       int64
}

func NewAttachmentHandler(attachmentSvc service.AttachmentService, maxSize int64) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentSvc: attachmentSvc,
		maxSize:       maxSize,
	}
}

// Upload 上传附件，缩略图在后台异步生成
func (s *AttachmentHandler) Upload(c *gin.Context) {
	if s.maxSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxSize+multipartOverhead)
	}

	var req dto.AttachmentUploadDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	attachment, err := s.attachmentSvc.CreateAttachment(c.Request.Context(), &service.AttachmentUpload{
		Reader:         reader,
		FileName:       file.Filename,
		FileSize:       file.Size,
		AttachableType: req.AttachableType,
		AttachableID:   req.AttachableID,
		Category:       req.Category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, attachment)
}

func (s *AttachmentHandler) ListAttachments(c *gin.Context) {
	var query dto.AttachmentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	attachments, err := s.attachmentSvc.ListAttachments(c.Request.Context(), query.AttachableType, query.AttachableID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, attachments)
}

func (s *AttachmentHandler) GetAttachment(c *gin.Context) {
	attachmentID, ok := idParam(c, "attachment_id")
	if !ok {
		return
	}

	attachment, err := s.attachmentSvc.GetAttachment(c.Request.Context(), attachmentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, attachment)
}

func (s *AttachmentHandler) UpdateOwner(c *gin.Context) {
	attachmentID, ok := idParam(c, "attachment_id")
	if !ok {
		return
	}

	var req dto.AttachmentOwnerDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	attachment, err := s.attachmentSvc.UpdateOwnership(c.Request.Context(), attachmentID, req.AttachableType, req.AttachableID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, attachment)
}

func (s *AttachmentHandler) DeleteAttachment(c *gin.Context) {
	attachmentID, ok := idParam(c, "attachment_id")
	if !ok {
		return
	}

	if err := s.attachmentSvc.RemoveAttachment(c.Request.Context(), attachmentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
