package handler

import (
	"Microblog/internal/api/dto"
	"Microblog/internal/pkg/response"
	"Microblog/internal/service"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	reactionSvc service.ReactionService
}

func NewReactionHandler(reactionSvc service.ReactionService) *ReactionHandler {
	return &ReactionHandler{
		reactionSvc: reactionSvc,
	}
}

// ListReactions 按目标查询聚合后的互动
func (s *ReactionHandler) ListReactions(c *gin.Context) {
	var query dto.ReactionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	reactions, err := s.reactionSvc.ListReactions(c.Request.Context(), query.ReactableType, query.ReactableID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reactions)
}

func (s *ReactionHandler) CreateReaction(c *gin.Context) {
	var req dto.ReactionCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	reaction, err := s.reactionSvc.CreateReaction(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reaction)
}

func (s *ReactionHandler) DeleteReaction(c *gin.Context) {
	reactionID, ok := idParam(c, "reaction_id")
	if !ok {
		return
	}

	if err := s.reactionSvc.RemoveReaction(c.Request.Context(), reactionID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
