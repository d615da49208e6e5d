package job

import (
	"Microblog/internal/pkg/consts"
	"Microblog/internal/pkg/logger"
	"Microblog/internal/pkg/redis"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeCleanup struct {
	draftCalls []time.Time
	trashCalls []time.Time
	traceIDs   []string
	err        error
}

func (f *fakeCleanup) PurgeStaleDrafts(ctx context.Context, now time.Time) (int, error) {
	f.draftCalls = append(f.draftCalls, now)
	f.traceIDs = append(f.traceIDs, ctx.Value(logger.TraceIDKey).(string))
	return 2, f.err
}

func (f *fakeCleanup) PurgeExpiredTrash(ctx context.Context, now time.Time) (int, error) {
	f.trashCalls = append(f.trashCalls, now)
	f.traceIDs = append(f.traceIDs, ctx.Value(logger.TraceIDKey).(string))
	return 1, f.err
}

type fakeLocker struct {
	held     map[string]string
	unlocked []string
	err      error
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]string{}}
}

func (l *fakeLocker) TryLock(_ context.Context, key string, value string, _ time.Duration) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	if _, ok := l.held[key]; ok {
		return false, nil
	}
	l.held[key] = value
	return true, nil
}

func (l *fakeLocker) UnLock(_ context.Context, key string, value string) {
	if l.held[key] == value {
		delete(l.held, key)
		l.unlocked = append(l.unlocked, key)
	}
}

var _ redis.Locker = (*fakeLocker)(nil)

func TestDraftCleanupJob_Run(t *testing.T) {
	cleanup := &fakeCleanup{}
	locker := newFakeLocker()
	fixed := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	job := NewDraftCleanupJob(cleanup, locker)
	job.now = func() time.Time { return fixed }

	job.Run()

	assert.Equal(t, []time.Time{fixed}, cleanup.draftCalls)
	assert.Empty(t, cleanup.trashCalls)
	assert.True(t, strings.HasPrefix(cleanup.traceIDs[0], "job-draft-cleanup-"))
	assert.Equal(t, []string{consts.DraftCleanupLock}, locker.unlocked)
	assert.Empty(t, locker.held)
}

func TestTrashCleanupJob_Run(t *testing.T) {
	cleanup := &fakeCleanup{err: errors.New("db down")}
	locker := newFakeLocker()
	job := NewTrashCleanupJob(cleanup, locker)

	job.Run()

	assert.Len(t, cleanup.trashCalls, 1)
	assert.True(t, strings.HasPrefix(cleanup.traceIDs[0], "job-trash-cleanup-"))
	// 失败后也要释放锁
	assert.Equal(t, []string{consts.TrashCleanupLock}, locker.unlocked)
}

func TestCleanupJob_SkipsWhenLockHeld(t *testing.T) {
	cleanup := &fakeCleanup{}
	locker := newFakeLocker()
	locker.held[consts.TrashCleanupLock] = "other-process"

	NewTrashCleanupJob(cleanup, locker).Run()

	assert.Empty(t, cleanup.trashCalls)
	assert.Equal(t, "other-process", locker.held[consts.TrashCleanupLock])
}

func TestCleanupJob_LockError(t *testing.T) {
	cleanup := &fakeCleanup{}
	locker := newFakeLocker()
	locker.err = errors.New("redis unreachable")

	NewDraftCleanupJob(cleanup, locker).Run()

	assert.Empty(t, cleanup.draftCalls)
}

func TestCleanupJob_NoopLocker(t *testing.T) {
	cleanup := &fakeCleanup{}
	job := NewDraftCleanupJob(cleanup, redis.NewNoopLocker())

	job.Run()
	job.Run()

	assert.Len(t, cleanup.draftCalls, 2)
}
