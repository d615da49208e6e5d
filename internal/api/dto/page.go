package dto

// PageQuery 分页参数
type PageQuery struct {
	Page  int    `form:"page" binding:"omitempty,min=1"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Order string `form:"order" binding:"omitempty,oneof=asc desc"`
}

// PageDTO 分页结果
type PageDTO[T any] struct {
	List       []T   `json:"list"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}
