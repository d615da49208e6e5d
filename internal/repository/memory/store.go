// Package memory 提供全部仓储接口的内存实现，用于测试和无数据库运行
package memory

import (
	"Microblog/internal/model"
	"Microblog/internal/repository"
	"context"
	"sort"
	"sync"
	"time"
)

var (
	_ repository.PostRepo       = (*Store)(nil)
	_ repository.DraftRepo      = (*Store)(nil)
	_ repository.CommentRepo    = (*Store)(nil)
	_ repository.ReactionRepo   = (*Store)(nil)
	_ repository.AttachmentRepo = (*Store)(nil)
)

type Store struct {
	mu          sync.RWMutex
	posts       map[string]model.Post
	drafts      map[string]model.Draft
	comments    map[string]model.Comment
	reactions   map[string]model.Reaction
	attachments map[string]model.Attachment
	seq         map[string]int64 // 插入顺序，时间相同时保持稳定
	nextSeq     int64
	now         func() time.Time
}

func New() *Store {
	return &Store{
		posts:       make(map[string]model.Post),
		drafts:      make(map[string]model.Draft),
		comments:    make(map[string]model.Comment),
		reactions:   make(map[string]model.Reaction),
		attachments: make(map[string]model.Attachment),
		seq:         make(map[string]int64),
		now:         time.Now,
	}
}

func (s *Store) stamp(id string) {
	s.nextSeq++
	s.seq[id] = s.nextSeq
}

func (s *Store) touch(t *time.Time) {
	if t.IsZero() {
		*t = s.now()
	}
}

func (s *Store) less(aID string, aT time.Time, bID string, bT time.Time, desc bool) bool {
	if !aT.Equal(bT) {
		if desc {
			return aT.After(bT)
		}
		return aT.Before(bT)
	}
	return s.seq[aID] < s.seq[bID]
}

func page[T any](items []T, opts repository.ListOptions) []T {
	if opts.Limit <= 0 {
		return items
	}
	if opts.Offset >= len(items) {
		return []T{}
	}
	end := opts.Offset + opts.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[opts.Offset:end]
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// ---- posts ----

func (s *Store) CreatePost(_ context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(&post.CreatedAt)
	s.touch(&post.UpdatedAt)
	p := *post
	p.DeletedAt = copyTime(post.DeletedAt)
	s.posts[p.ID] = p
	s.stamp(p.ID)
	return nil
}

func (s *Store) GetPost(_ context.Context, id string, scope repository.Scope) (*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok || !scope.Includes(p.DeletedAt != nil) {
		return nil, repository.ErrNotFound
	}
	p.DeletedAt = copyTime(p.DeletedAt)
	return &p, nil
}

func (s *Store) filterPosts(scope repository.Scope) []*model.Post {
	out := make([]*model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if scope.Includes(p.DeletedAt != nil) {
			p := p
			p.DeletedAt = copyTime(p.DeletedAt)
			out = append(out, &p)
		}
	}
	return out
}

func (s *Store) ListPosts(_ context.Context, scope repository.Scope, opts repository.ListOptions) ([]*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.filterPosts(scope)
	sort.Slice(out, func(i, j int) bool {
		return s.less(out[i].ID, out[i].CreatedAt, out[j].ID, out[j].CreatedAt, opts.Desc)
	})
	return page(out, opts), nil
}

func (s *Store) CountPosts(_ context.Context, scope repository.Scope) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.filterPosts(scope))), nil
}

func (s *Store) UpdatePostContent(_ context.Context, id string, content string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil
	}
	p.Content = content
	p.UpdatedAt = updatedAt
	s.posts[id] = p
	return nil
}

func (s *Store) SetPostDeletedAt(_ context.Context, id string, deletedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil
	}
	p.DeletedAt = copyTime(deletedAt)
	s.posts[id] = p
	return nil
}

// PublishDraft 持有写锁完成建帖、转移附件、删草稿，草稿不存在时不做任何修改
func (s *Store) PublishDraft(_ context.Context, post *model.Post, draftID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[draftID]; !ok {
		return 0, repository.ErrNotFound
	}

	s.touch(&post.CreatedAt)
	s.touch(&post.UpdatedAt)
	p := *post
	p.DeletedAt = copyTime(post.DeletedAt)
	s.posts[p.ID] = p
	s.stamp(p.ID)

	var moved int64
	for id, a := range s.attachments {
		if a.AttachableType == model.AttachableDraft && a.AttachableID == draftID {
			a.AttachableType = model.AttachablePost
			a.AttachableID = p.ID
			s.attachments[id] = a
			moved++
		}
	}

	delete(s.drafts, draftID)
	delete(s.seq, draftID)
	return moved, nil
}

func (s *Store) GetTrashedPostsBefore(_ context.Context, cutoff time.Time) ([]*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.Post
	for _, p := range s.filterPosts(repository.ScopeTrashed) {
		if p.DeletedAt.Before(cutoff) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return s.less(out[i].ID, *out[i].DeletedAt, out[j].ID, *out[j].DeletedAt, false)
	})
	return out, nil
}

func (s *Store) DeletePosts(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.posts, id)
		delete(s.seq, id)
	}
	return nil
}

// ---- drafts ----

func (s *Store) CreateDraft(_ context.Context, draft *model.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(&draft.CreatedAt)
	s.touch(&draft.UpdatedAt)
	s.drafts[draft.ID] = *draft
	s.stamp(draft.ID)
	return nil
}

func (s *Store) GetDraft(_ context.Context, id string) (*model.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (s *Store) ListDrafts(_ context.Context, opts repository.ListOptions) ([]*model.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Draft, 0, len(s.drafts))
	for _, d := range s.drafts {
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool {
		return s.less(out[i].ID, out[i].UpdatedAt, out[j].ID, out[j].UpdatedAt, opts.Desc)
	})
	return page(out, opts), nil
}

func (s *Store) CountDrafts(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.drafts)), nil
}

func (s *Store) UpdateDraftContent(_ context.Context, id string, content string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil
	}
	d.Content = content
	d.UpdatedAt = updatedAt
	s.drafts[id] = d
	return nil
}

func (s *Store) GetDraftsUpdatedBefore(_ context.Context, cutoff time.Time) ([]*model.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.Draft
	for _, d := range s.drafts {
		if d.UpdatedAt.Before(cutoff) {
			d := d
			out = append(out, &d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return s.less(out[i].ID, out[i].UpdatedAt, out[j].ID, out[j].UpdatedAt, false)
	})
	return out, nil
}

func (s *Store) DeleteDraft(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	delete(s.seq, id)
	return nil
}

// ---- comments ----

func (s *Store) CreateComment(_ context.Context, comment *model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(&comment.CreatedAt)
	s.touch(&comment.UpdatedAt)
	c := *comment
	c.DeletedAt = copyTime(comment.DeletedAt)
	s.comments[c.ID] = c
	s.stamp(c.ID)
	return nil
}

func (s *Store) GetComment(_ context.Context, id string, scope repository.Scope) (*model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[id]
	if !ok || !scope.Includes(c.DeletedAt != nil) {
		return nil, repository.ErrNotFound
	}
	c.DeletedAt = copyTime(c.DeletedAt)
	return &c, nil
}

func (s *Store) filterComments(postID string, scope repository.Scope) []*model.Comment {
	var out []*model.Comment
	for _, c := range s.comments {
		if c.PostID == postID && scope.Includes(c.DeletedAt != nil) {
			c := c
			c.DeletedAt = copyTime(c.DeletedAt)
			out = append(out, &c)
		}
	}
	return out
}

func (s *Store) ListCommentsByPost(_ context.Context, postID string, scope repository.Scope, opts repository.ListOptions) ([]*model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.filterComments(postID, scope)
	sort.Slice(out, func(i, j int) bool {
		return s.less(out[i].ID, out[i].CreatedAt, out[j].ID, out[j].CreatedAt, opts.Desc)
	})
	return page(out, opts), nil
}

func (s *Store) CountCommentsByPost(_ context.Context, postID string, scope repository.Scope) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.filterComments(postID, scope))), nil
}

func (s *Store) UpdateCommentContent(_ context.Context, id string, content string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil
	}
	c.Content = content
	c.UpdatedAt = updatedAt
	s.comments[id] = c
	return nil
}

func (s *Store) SetCommentDeletedAt(_ context.Context, id string, deletedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil
	}
	c.DeletedAt = copyTime(deletedAt)
	s.comments[id] = c
	return nil
}

func (s *Store) DeleteComments(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range toSet(ids) {
		delete(s.comments, id)
		delete(s.seq, id)
	}
	return nil
}

// ---- reactions ----

func (s *Store) CreateReaction(_ context.Context, reaction *model.Reaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(&reaction.CreatedAt)
	s.reactions[reaction.ID] = *reaction
	s.stamp(reaction.ID)
	return nil
}

func (s *Store) GetReaction(_ context.Context, id string) (*model.Reaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reactions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (s *Store) ListReactions(_ context.Context, reactableType, reactableID string) ([]*model.Reaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.Reaction
	for _, r := range s.reactions {
		if r.ReactableType == reactableType && r.ReactableID == reactableID {
			r := r
			out = append(out, &r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return s.less(out[i].ID, out[i].CreatedAt, out[j].ID, out[j].CreatedAt, false)
	})
	return out, nil
}

func (s *Store) DeleteReaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reactions, id)
	delete(s.seq, id)
	return nil
}

func (s *Store) DeleteReactionsByTarget(_ context.Context, reactableType, reactableID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, r := range s.reactions {
		if r.ReactableType == reactableType && r.ReactableID == reactableID {
			delete(s.reactions, id)
			delete(s.seq, id)
			n++
		}
	}
	return n, nil
}

// ---- attachments ----

func copyAttachment(a model.Attachment) *model.Attachment {
	a.ThumbnailPath = copyString(a.ThumbnailPath)
	return &a
}

func (s *Store) CreateAttachment(_ context.Context, attachment *model.Attachment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(&attachment.CreatedAt)
	s.attachments[attachment.ID] = *copyAttachment(*attachment)
	s.stamp(attachment.ID)
	return nil
}

func (s *Store) GetAttachment(_ context.Context, id string) (*model.Attachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.attachments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyAttachment(a), nil
}

func (s *Store) ListAttachmentsByOwner(_ context.Context, attachableType, attachableID string) ([]*model.Attachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.Attachment
	for _, a := range s.attachments {
		if a.AttachableType == attachableType && a.AttachableID == attachableID {
			out = append(out, copyAttachment(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return s.less(out[i].ID, out[i].CreatedAt, out[j].ID, out[j].CreatedAt, false)
	})
	return out, nil
}

func (s *Store) UpdateAttachmentOwner(_ context.Context, id string, attachableType, attachableID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attachments[id]
	if !ok {
		return nil
	}
	a.AttachableType = attachableType
	a.AttachableID = attachableID
	s.attachments[id] = a
	return nil
}

func (s *Store) UpdateAttachmentThumbnail(_ context.Context, id string, thumbnailPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attachments[id]
	if !ok {
		return nil
	}
	p := thumbnailPath
	a.ThumbnailPath = &p
	s.attachments[id] = a
	return nil
}

func (s *Store) DeleteAttachment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attachments, id)
	delete(s.seq, id)
	return nil
}
