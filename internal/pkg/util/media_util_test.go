package util

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSafeContentType(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	reader := bytes.NewReader(buf.Bytes())

	contentType, err := GetSafeContentType(reader)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	// reader 已重置
	rest, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, buf.Len(), len(rest))

	contentType, err = GetSafeContentType(strings.NewReader("hello world"))
	require.NoError(t, err)
	assert.Equal(t, "text/plain", contentType)
}

func TestNewObjectName(t *testing.T) {
	now := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	name := NewObjectName(now, "Photo.JPG")
	assert.True(t, strings.HasPrefix(name, "2026/10/17/"))
	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.NotEqual(t, name, NewObjectName(now, "Photo.JPG"))
}
