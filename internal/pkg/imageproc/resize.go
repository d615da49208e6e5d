// Package imageproc 图片处理
package imageproc

import (
	"bytes"
	"image"
	"io"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/webp"
)

// Resizer 按固定宽度等比缩放图片，返回缩略图的编码格式
type Resizer interface {
	Resize(src io.Reader, dst io.Writer, width int) (imaging.Format, error)
}

type imagingResizer struct{}

func NewResizer() Resizer {
	return imagingResizer{}
}

// decodedFormats image 包注册的解码器名称到输出格式，webp 无编码器，输出 png
var decodedFormats = map[string]imaging.Format{
	"jpeg": imaging.JPEG,
	"png":  imaging.PNG,
	"gif":  imaging.GIF,
	"bmp":  imaging.BMP,
	"tiff": imaging.TIFF,
	"webp": imaging.PNG,
}

// Resize 格式由文件内容决定，与文件名无关；高度为 0 时保持原始比例
func (imagingResizer) Resize(src io.Reader, dst io.Writer, width int) (imaging.Format, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return 0, errors.Wrap(err, "read image")
	}

	_, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, errors.Wrap(err, "detect image format")
	}
	format, ok := decodedFormats[name]
	if !ok {
		return 0, errors.Errorf("unsupported image format %s", name)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return 0, errors.Wrapf(err, "decode %s", name)
	}

	thumb := imaging.Resize(img, width, 0, imaging.Lanczos)
	if err = imaging.Encode(dst, thumb, format); err != nil {
		return 0, errors.Wrapf(err, "encode %s", format)
	}
	return format, nil
}

var contentTypes = map[imaging.Format]string{
	imaging.JPEG: "image/jpeg",
	imaging.PNG:  "image/png",
	imaging.GIF:  "image/gif",
	imaging.BMP:  "image/bmp",
	imaging.TIFF: "image/tiff",
}

// ContentType 缩略图的 MIME 类型
func ContentType(format imaging.Format) string {
	return contentTypes[format]
}

// ThumbnailName 扩展名与输出格式不符或缺失时替换为对应扩展名
func ThumbnailName(name string, format imaging.Format) string {
	if f, err := imaging.FormatFromFilename(name); err == nil && f == format {
		return name
	}
	return strings.TrimSuffix(name, path.Ext(name)) + "." + strings.ToLower(format.String())
}
