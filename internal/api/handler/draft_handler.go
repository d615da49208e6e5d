package handler

import (
	"Microblog/internal/api/dto"
	"Microblog/internal/pkg/response"
	"Microblog/internal/service"

	"github.com/gin-gonic/gin"
)

type DraftHandler struct {
	draftSvc service.DraftService
}

func NewDraftHandler(draftSvc service.DraftService) *DraftHandler {
	return &DraftHandler{
		draftSvc: draftSvc,
	}
}

func (s *DraftHandler) ListDrafts(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	drafts, err := s.draftSvc.ListDrafts(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, drafts)
}

func (s *DraftHandler) CreateDraft(c *gin.Context) {
	var req dto.DraftBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	draft, err := s.draftSvc.CreateDraft(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, draft)
}

func (s *DraftHandler) GetDraft(c *gin.Context) {
	draftID, ok := idParam(c, "draft_id")
	if !ok {
		return
	}

	draft, err := s.draftSvc.GetDraft(c.Request.Context(), draftID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, draft)
}

// UpdateDraft 客户端自动保存
func (s *DraftHandler) UpdateDraft(c *gin.Context) {
	draftID, ok := idParam(c, "draft_id")
	if !ok {
		return
	}

	var req dto.DraftBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	draft, err := s.draftSvc.UpdateDraft(c.Request.Context(), draftID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, draft)
}

func (s *DraftHandler) DeleteDraft(c *gin.Context) {
	draftID, ok := idParam(c, "draft_id")
	if !ok {
		return
	}

	if err := s.draftSvc.DeleteDraft(c.Request.Context(), draftID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
