package api

import "Microblog/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	PostHandler       *handler.PostHandler
	DraftHandler      *handler.DraftHandler
	CommentHandler    *handler.CommentHandler
	ReactionHandler   *handler.ReactionHandler
	AttachmentHandler *handler.AttachmentHandler
}
