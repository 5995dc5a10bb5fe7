package dto

// ================== 通用分页 DTO ==================

// PaginationParams 分页参数
type PaginationParams struct {
	Page     int `json:"page,omitempty"`
	PageSize int `json:"page_size,omitempty"`
}

// PaginationResponse 分页响应
type PaginationResponse[T any] struct {
	List     []T `json:"list"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}
