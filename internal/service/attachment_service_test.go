package service

import (
	"Microblog/internal/api/dto"
	"Microblog/internal/model"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachmentService_CreateAttachment(t *testing.T) {
	env := newTestEnv(t)
	post := env.createPost(t, "{}")

	attachment := env.upload(t, model.AttachablePost, post.ID, "Photo.PNG", pngBytes(t, 20, 10))

	assert.Len(t, attachment.ID, 21)
	assert.Equal(t, model.AttachablePost, attachment.AttachableType)
	assert.Equal(t, post.ID, attachment.AttachableID)
	assert.Equal(t, model.CategoryAttachment, attachment.Category)
	assert.Equal(t, "Photo.PNG", attachment.FileName)
	assert.Equal(t, "image/png", attachment.MimeType)
	assert.True(t, strings.HasPrefix(attachment.FilePath, "2024/05/01/"))
	assert.True(t, strings.HasSuffix(attachment.FilePath, ".png"))
	assert.Nil(t, attachment.ThumbnailPath)
	assert.True(t, env.fileExists(attachment.FilePath))
	assert.Equal(t, []string{attachment.ID}, env.publisher.ids())
}

func TestAttachmentService_CreateAttachment_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.createPost(t, "{}")

	cases := []struct {
		name   string
		upload *AttachmentUpload
		want   error
	}{
		{
			name: "unknown owner type",
			upload: &AttachmentUpload{
				Reader: bytes.NewReader([]byte("x")), FileName: "a.txt", FileSize: 1,
				AttachableType: "user", AttachableID: post.ID,
			},
			want: ErrAttachableInvalid,
		},
		{
			name: "missing owner",
			upload: &AttachmentUpload{
				Reader: bytes.NewReader([]byte("x")), FileName: "a.txt", FileSize: 1,
				AttachableType: model.AttachableDraft, AttachableID: strings.Repeat("a", 21),
			},
			want: ErrAttachableInvalid,
		},
		{
			name: "gallery requires image",
			upload: &AttachmentUpload{
				Reader: bytes.NewReader([]byte("plain text")), FileName: "a.txt", FileSize: 10,
				AttachableType: model.AttachablePost, AttachableID: post.ID, Category: model.CategoryGallery,
			},
			want: ErrFileNotSupported,
		},
		{
			name: "unknown category",
			upload: &AttachmentUpload{
				Reader: bytes.NewReader([]byte("x")), FileName: "a.txt", FileSize: 1,
				AttachableType: model.AttachablePost, AttachableID: post.ID, Category: "avatar",
			},
			want: ErrParamInvalid,
		},
		{
			name: "too large",
			upload: &AttachmentUpload{
				Reader: bytes.NewReader([]byte("x")), FileName: "a.bin", FileSize: 2 << 20,
				AttachableType: model.AttachablePost, AttachableID: post.ID,
			},
			want: ErrFileTooLarge,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.attachments.CreateAttachment(ctx, tc.upload)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, env.publisher.ids())
}

func TestAttachmentService_ListAttachments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.createPost(t, "{}")

	first := env.upload(t, model.AttachablePost, post.ID, "1.txt", []byte("one"))
	second := env.upload(t, model.AttachablePost, post.ID, "2.txt", []byte("two"))

	list, err := env.attachments.ListAttachments(ctx, model.AttachablePost, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	empty, err := env.attachments.ListAttachments(ctx, model.AttachableDraft, post.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAttachmentService_UpdateOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.createPost(t, "{}")
	other := env.createPost(t, "{}")
	attachment := env.upload(t, model.AttachablePost, post.ID, "cat.png", pngBytes(t, 8, 8))
	require.NoError(t, env.thumbnails.GenerateThumbnail(ctx, attachment.ID))
	before, err := env.attachments.GetAttachment(ctx, attachment.ID)
	require.NoError(t, err)

	updated, err := env.attachments.UpdateOwnership(ctx, attachment.ID, model.AttachablePost, other.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, updated.AttachableID)

	after, err := env.attachments.GetAttachment(ctx, attachment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttachablePost, after.AttachableType)
	assert.Equal(t, other.ID, after.AttachableID)
	assert.Equal(t, before.FileName, after.FileName)
	assert.Equal(t, before.FilePath, after.FilePath)
	assert.Equal(t, before.FileSize, after.FileSize)
	assert.Equal(t, before.MimeType, after.MimeType)
	assert.Equal(t, before.ThumbnailPath, after.ThumbnailPath)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)

	_, err = env.attachments.UpdateOwnership(ctx, strings.Repeat("x", 21), model.AttachablePost, other.ID)
	assert.ErrorIs(t, err, ErrAttachmentNotFound)
}

func TestAttachmentService_RemoveAttachment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.createPost(t, "{}")
	attachment := env.upload(t, model.AttachablePost, post.ID, "cat.png", pngBytes(t, 8, 8))
	require.NoError(t, env.thumbnails.GenerateThumbnail(ctx, attachment.ID))
	withThumb, err := env.attachments.GetAttachment(ctx, attachment.ID)
	require.NoError(t, err)
	require.NotNil(t, withThumb.ThumbnailPath)
	require.True(t, env.fileExists(*withThumb.ThumbnailPath))

	require.NoError(t, env.attachments.RemoveAttachment(ctx, attachment.ID))

	assert.False(t, env.fileExists(attachment.FilePath))
	assert.False(t, env.fileExists(*withThumb.ThumbnailPath))
	_, err = env.attachments.GetAttachment(ctx, attachment.ID)
	assert.ErrorIs(t, err, ErrAttachmentNotFound)

	assert.ErrorIs(t, env.attachments.RemoveAttachment(ctx, attachment.ID), ErrAttachmentNotFound)
}

func TestAttachmentService_RemoveAttachment_FileAlreadyGone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.createPost(t, "{}")
	attachment := env.upload(t, model.AttachablePost, post.ID, "notes.txt", []byte("hello"))

	require.NoError(t, os.Remove(filepath.Join(env.files.Root(), filepath.FromSlash(attachment.FilePath))))

	require.NoError(t, env.attachments.RemoveAttachment(ctx, attachment.ID))
	_, err := env.attachments.GetAttachment(ctx, attachment.ID)
	assert.ErrorIs(t, err, ErrAttachmentNotFound)
}

func TestAttachmentService_ReparentAttachments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	draft, err := env.drafts.CreateDraft(ctx, &dto.DraftBaseDTO{Content: "{}"})
	require.NoError(t, err)
	post := env.createPost(t, "{}")
	env.upload(t, model.AttachableDraft, draft.ID, "a.txt", []byte("a"))
	env.upload(t, model.AttachableDraft, draft.ID, "b.txt", []byte("b"))

	moved, err := env.attachments.ReparentAttachments(ctx, model.AttachableDraft, draft.ID, model.AttachablePost, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, moved)

	left, err := env.attachments.ListAttachments(ctx, model.AttachableDraft, draft.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
	onPost, err := env.attachments.ListAttachments(ctx, model.AttachablePost, post.ID)
	require.NoError(t, err)
	assert.Len(t, onPost, 2)
}
