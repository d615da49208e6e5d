// Package storage 附件文件存储，路径均为相对存储根的 / 分隔路径
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// FileStore 附件文件存储
type FileStore interface {
	Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Remove 删除文件，文件不存在时返回 nil
	Remove(ctx context.Context, name string) error
}

var ErrInvalidPath = errors.New("invalid storage path")

// CleanName 校验并规范化相对路径，拒绝绝对路径和越出根目录的路径
func CleanName(name string) (string, error) {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return "", errors.Wrapf(ErrInvalidPath, "name %q", name)
	}
	cleaned := path.Clean(name)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.Wrapf(ErrInvalidPath, "name %q", name)
	}
	return cleaned, nil
}
