package imageproc

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 无损 webp
const tinyWebP = "UklGRhoAAABXRUJQVlA4TA0AAAAvAAAAEAcQERGIiP4HAA=="

func pngData(t *testing.T, w, h int) []byte {
	t.Helper()
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	src.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	return buf.Bytes()
}

func TestResize(t *testing.T) {
	var out bytes.Buffer
	format, err := NewResizer().Resize(bytes.NewReader(pngData(t, 800, 600)), &out, 400)
	require.NoError(t, err)
	assert.Equal(t, imaging.PNG, format)

	cfg, err := png.DecodeConfig(&out)
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.Width)
	assert.Equal(t, 300, cfg.Height)
}

func TestResize_JPEG(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(pngData(t, 100, 50)))
	require.NoError(t, err)
	var in bytes.Buffer
	require.NoError(t, imaging.Encode(&in, img, imaging.JPEG))

	var out bytes.Buffer
	format, err := NewResizer().Resize(&in, &out, 50)
	require.NoError(t, err)
	assert.Equal(t, imaging.JPEG, format)
	assert.Equal(t, "image/jpeg", ContentType(format))
}

func TestResize_WebPEncodedAsPNG(t *testing.T) {
	data, err := base64.StdEncoding.DecodeString(tinyWebP)
	require.NoError(t, err)

	var out bytes.Buffer
	format, err := NewResizer().Resize(bytes.NewReader(data), &out, 2)
	require.NoError(t, err)
	assert.Equal(t, imaging.PNG, format)

	cfg, err := png.DecodeConfig(&out)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Width)
}

func TestResize_CorruptImage(t *testing.T) {
	var out bytes.Buffer
	_, err := NewResizer().Resize(strings.NewReader("not an image"), &out, 400)
	assert.Error(t, err)
	assert.Zero(t, out.Len())
}

func TestThumbnailName(t *testing.T) {
	assert.Equal(t, "a/b.png", ThumbnailName("a/b.png", imaging.PNG))
	assert.Equal(t, "a/b.jpeg", ThumbnailName("a/b.jpeg", imaging.JPEG))
	assert.Equal(t, "a/blob.png", ThumbnailName("a/blob", imaging.PNG))
	assert.Equal(t, "a/photo.png", ThumbnailName("a/photo.dat", imaging.PNG))
	assert.Equal(t, "a/pic.png", ThumbnailName("a/pic.webp", imaging.PNG))
}
