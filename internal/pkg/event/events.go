package event

import "context"

// Publisher 事件发布方只依赖此接口
type Publisher[T any] interface {
	Publish(ctx context.Context, evt T) bool
}

// AttachmentCreated 附件写入数据库后发布，只携带 id，消费方需重新查询
type AttachmentCreated struct {
	AttachmentID string
}
