package service

import (
	"Microblog/internal/api/dto"
	"Microblog/internal/pkg/event"
	"Microblog/internal/pkg/imageproc"
	"Microblog/internal/pkg/storage"
	"Microblog/internal/repository/memory"
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.AttachmentCreated
}

func (p *recordingPublisher) Publish(_ context.Context, evt event.AttachmentCreated) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return true
}

func (p *recordingPublisher) ids() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, evt := range p.events {
		out = append(out, evt.AttachmentID)
	}
	return out
}

// countingResizer 记录调用次数
type countingResizer struct {
	inner imageproc.Resizer
	calls int
}

func (r *countingResizer) Resize(src io.Reader, dst io.Writer, width int) (imaging.Format, error) {
	r.calls++
	return r.inner.Resize(src, dst, width)
}

type testEnv struct {
	store     *memory.Store
	files     *storage.LocalStore
	publisher *recordingPublisher
	resizer   *countingResizer
	clock     *fakeClock

	attachments AttachmentService
	thumbnails  ThumbnailService
	posts       PostService
	drafts      DraftService
	comments    CommentService
	reactions   ReactionService
	cleanup     CleanupService
}

// fakeClock 每次读取前进一个步长，保证创建顺序可预期
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	files, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	env := &testEnv{
		store:     memory.New(),
		files:     files,
		publisher: &recordingPublisher{},
		resizer:   &countingResizer{inner: imageproc.NewResizer()},
		clock:     &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), step: time.Second},
	}
	s := env.store

	attachments := NewAttachmentService(s, s, s, s, files, env.publisher, 1<<20)
	attachments.(*attachmentServiceImpl).now = env.clock.Now
	env.attachments = attachments

	env.thumbnails = NewThumbnailService(s, files, env.resizer, 0, "")

	posts := NewPostService(s, s, attachments, DefaultGraceDays)
	posts.(*postServiceImpl).now = env.clock.Now
	env.posts = posts

	drafts := NewDraftService(s, attachments)
	drafts.(*draftServiceImpl).now = env.clock.Now
	env.drafts = drafts

	comments := NewCommentService(s, s, s, attachments)
	comments.(*commentServiceImpl).now = env.clock.Now
	env.comments = comments

	reactions := NewReactionService(s, s, s)
	reactions.(*reactionServiceImpl).now = env.clock.Now
	env.reactions = reactions

	env.cleanup = NewCleanupService(s, s, s, s, attachments, DefaultGraceDays)
	return env
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(1, 1, color.RGBA{G: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func (e *testEnv) upload(t *testing.T, ownerType, ownerID, fileName string, data []byte) *dto.AttachmentDTO {
	t.Helper()
	attachment, err := e.attachments.CreateAttachment(context.Background(), &AttachmentUpload{
		Reader:         bytes.NewReader(data),
		FileName:       fileName,
		FileSize:       int64(len(data)),
		AttachableType: ownerType,
		AttachableID:   ownerID,
	})
	require.NoError(t, err)
	return attachment
}

func (e *testEnv) fileExists(name string) bool {
	_, err := os.Stat(filepath.Join(e.files.Root(), filepath.FromSlash(name)))
	return err == nil
}

func (e *testEnv) createPost(t *testing.T, content string) *dto.PostDTO {
	t.Helper()
	post, err := e.posts.CreatePost(context.Background(), &dto.PostBaseDTO{Content: content})
	require.NoError(t, err)
	return post
}
