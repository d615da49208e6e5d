package handler

import (
	"Microblog/internal/api/dto"
	"Microblog/internal/pkg/response"
	"Microblog/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentSvc: commentSvc,
	}
}

func (s *CommentHandler) ListComments(c *gin.Context) {
	postID, ok := idParam(c, "post_id")
	if !ok {
		return
	}

	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	comments, err := s.commentSvc.ListComments(c.Request.Context(), postID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *CommentHandler) CreateComment(c *gin.Context) {
	postID, ok := idParam(c, "post_id")
	if !ok {
		return
	}

	var req dto.CommentBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := s.commentSvc.CreateComment(c.Request.Context(), postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (s *CommentHandler) GetComment(c *gin.Context) {
	commentID, ok := idParam(c, "comment_id")
	if !ok {
		return
	}

	comment, err := s.commentSvc.GetComment(c.Request.Context(), commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (s *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, ok := idParam(c, "comment_id")
	if !ok {
		return
	}

	var req dto.CommentBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := s.commentSvc.UpdateComment(c.Request.Context(), commentID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (s *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := idParam(c, "comment_id")
	if !ok {
		return
	}

	if err := s.commentSvc.DeleteComment(c.Request.Context(), commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
