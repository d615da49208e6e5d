package api

import (
	"Microblog/internal/api/middleware"
	"Microblog/internal/pkg/logger"
	"Microblog/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			response.Success(c, "pong")
		})

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("", group.PostHandler.ListPosts)
			postGroup.POST("", group.PostHandler.CreatePost)
			postGroup.GET("/trash", group.PostHandler.GetTrash)
			postGroup.GET("/:post_id", group.PostHandler.GetPost)
			postGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
			postGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
			postGroup.POST("/:post_id/restore", group.PostHandler.RestorePost)
			postGroup.GET("/:post_id/export", group.PostHandler.ExportPost)

			postGroup.GET("/:post_id/comments", group.CommentHandler.ListComments)
			postGroup.POST("/:post_id/comments", group.CommentHandler.CreateComment)
		}

		commentGroup := apiGroup.Group("/comments")
		{
			commentGroup.GET("/:comment_id", group.CommentHandler.GetComment)
			commentGroup.PUT("/:comment_id", group.CommentHandler.UpdateComment)
			commentGroup.DELETE("/:comment_id", group.CommentHandler.DeleteComment)
		}

		draftGroup := apiGroup.Group("/drafts")
		{
			draftGroup.GET("", group.DraftHandler.ListDrafts)
			draftGroup.POST("", group.DraftHandler.CreateDraft)
			draftGroup.GET("/:draft_id", group.DraftHandler.GetDraft)
			draftGroup.PUT("/:draft_id", group.DraftHandler.UpdateDraft)
			draftGroup.DELETE("/:draft_id", group.DraftHandler.DeleteDraft)
		}

		reactionGroup := apiGroup.Group("/reactions")
		{
			reactionGroup.GET("", group.ReactionHandler.ListReactions)
			reactionGroup.POST("", group.ReactionHandler.CreateReaction)
			reactionGroup.DELETE("/:reaction_id", group.ReactionHandler.DeleteReaction)
		}

		attachmentGroup := apiGroup.Group("/attachments")
		{
			attachmentGroup.GET("", group.AttachmentHandler.ListAttachments)
			attachmentGroup.POST("", group.AttachmentHandler.Upload)
			attachmentGroup.GET("/:attachment_id", group.AttachmentHandler.GetAttachment)
			attachmentGroup.PUT("/:attachment_id/owner", group.AttachmentHandler.UpdateOwner)
			attachmentGroup.DELETE("/:attachment_id", group.AttachmentHandler.DeleteAttachment)
		}
	}

	return r
}
