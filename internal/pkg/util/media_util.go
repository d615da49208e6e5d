package util

import (
	"io"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// GetSafeContentType 通过文件头嗅探 MIME 类型，读取后将 reader 重置到开头
func GetSafeContentType(reader io.ReadSeeker) (string, error) {
	mt, err := mimetype.DetectReader(reader)
	if err != nil {
		return "", err
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	// 去掉 charset 等参数
	contentType, _, _ := strings.Cut(mt.String(), ";")
	return strings.TrimSpace(contentType), nil
}

// NewObjectName 生成按日期分目录的存储文件名
func NewObjectName(now time.Time, originalName string) string {
	ext := strings.ToLower(path.Ext(originalName))
	return now.Format("2006/01/02/") + uuid.NewString() + ext
}
