package model

import "time"

// TrashState 软删除状态：Active 或 Trashed{since}
type TrashState struct {
	since *time.Time
}

// Active 正常状态
func Active() TrashState {
	return TrashState{}
}

// Trashed 已进入回收站
func Trashed(since time.Time) TrashState {
	t := since
	return TrashState{since: &t}
}

func stateOf(deletedAt *time.Time) TrashState {
	if deletedAt == nil {
		return Active()
	}
	return Trashed(*deletedAt)
}

func (s TrashState) IsTrashed() bool {
	return s.since != nil
}

// Since 进入回收站的时间，Active 状态下返回零值
func (s TrashState) Since() time.Time {
	if s.since == nil {
		return time.Time{}
	}
	return *s.since
}
