package model

// All 需要迁移的全部模型
func All() []any {
	return []any{
		&Post{},
		&Draft{},
		&Comment{},
		&Reaction{},
		&Attachment{},
	}
}
