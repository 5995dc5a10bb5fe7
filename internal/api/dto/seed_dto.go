package dto

// ================== 种子管理 DTO ==================

// SeedConfig 种子配置
type SeedConfig struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	IconURL    string `json:"icon_url"`
	RewardType string `json:"reward_type"`
	ShopSkuID  string `json:"shop_sku_id,omitempty"`
	CouponID   string `json:"coupon_id,omitempty"`
	SortOrder  int    `json:"sort_order"`
	Status     int    `json:"status"` // 0 启用 1 禁用
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// SeedListResponse 种子列表响应
type SeedListResponse = PaginationResponse[SeedConfig]

// CreateSeedRequest 创建种子请求
type CreateSeedRequest struct {
	Name      string `json:"name"`
	IconURL   string `json:"icon_url"`
	ShopSkuID string `json:"shop_sku_id,omitempty"`
	CouponID  string `json:"coupon_id,omitempty"`
	SortOrder int    `json:"sort_order,omitempty"`
	Status    *int   `json:"status,omitempty"`
}

// UpdateSeedRequest 更新种子请求（零值字段不下发）
type UpdateSeedRequest struct {
	Name      string `json:"name,omitempty"`
	IconURL   string `json:"icon_url,omitempty"`
	ShopSkuID string `json:"shop_sku_id,omitempty"`
	CouponID  string `json:"coupon_id,omitempty"`
	SortOrder *int   `json:"sort_order,omitempty"`
}

// UpdateSeedStatusRequest 更新种子状态请求
type UpdateSeedStatusRequest struct {
	Status int `json:"status"`
}
