package service

import (
	"Microblog/internal/repository"
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	PayloadTooLarge     = 413
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrPostNotFound       = errors.New("帖子不存在")
	ErrDraftNotFound      = errors.New("草稿不存在")
	ErrCommentNotFound    = errors.New("评论不存在")
	ErrReactionNotFound   = errors.New("互动不存在")
	ErrAttachmentNotFound = errors.New("附件不存在")
	ErrReactableInvalid   = errors.New("互动目标无效")
	ErrAttachableInvalid  = errors.New("附件归属无效")
	ErrFileNotSupported   = errors.New("不支持的文件类型")
	ErrFileTooLarge       = errors.New("文件过大")
	ErrInvalidContent     = errors.New("内容格式错误")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrPostNotFound:       NotFound,
	ErrDraftNotFound:      NotFound,
	ErrCommentNotFound:    NotFound,
	ErrReactionNotFound:   NotFound,
	ErrAttachmentNotFound: NotFound,
	ErrReactableInvalid:   BadRequest,
	ErrAttachableInvalid:  BadRequest,
	ErrFileNotSupported:   BadRequest,
	ErrFileTooLarge:       PayloadTooLarge,
	ErrInvalidContent:     BadRequest,
	UnExpectedError:       InternalServerError,
}

// notFound 将仓储层的不存在错误转换为业务错误，其余错误原样返回
func notFound(err error, target error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return target
	}
	return err
}
