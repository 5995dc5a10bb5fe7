package dto

// ================== 收获记录 DTO ==================

// AddressSnapshot 地址快照（兑换时固化，不随用户地址簿变化）
type AddressSnapshot struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Province string `json:"province"`
	City     string `json:"city"`
	District string `json:"district"`
	Detail   string `json:"detail"`
}

// SeedSnapshot 种子快照
type SeedSnapshot struct {
	Name       string `json:"name"`
	IconURL    string `json:"icon_url"`
	RewardType string `json:"reward_type"`
	ShopSkuID  string `json:"shop_sku_id,omitempty"`
	CouponID   string `json:"coupon_id,omitempty"`
}

// HarvestRecord 收获记录
type HarvestRecord struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	TreeID      int64           `json:"tree_id"`
	SeedID      int64           `json:"seed_id"`
	RoundID     int64           `json:"round_id"`
	Status      string          `json:"status"`
	SeedData    SeedSnapshot    `json:"seed_data"`
	AddressData AddressSnapshot `json:"address_data"`
	TrackingNo  string          `json:"tracking_no,omitempty"`
	CreatedAt   string          `json:"created_at"`
	RedeemedAt  string          `json:"redeemed_at,omitempty"`
	ShippedAt   string          `json:"shipped_at,omitempty"`
	CompletedAt string          `json:"completed_at,omitempty"`
	UpdatedAt   string          `json:"updated_at"`
}

// HarvestListParams 收获记录列表参数（支持状态筛选）
type HarvestListParams struct {
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
	Status   string `json:"status,omitempty"`
}

// HarvestListResponse 收获记录列表响应
// 注意：该接口的分页字段与其他列表不同（records/size）
type HarvestListResponse struct {
	Records []HarvestRecord `json:"records"`
	Page    int             `json:"page"`
	Size    int             `json:"size"`
	Total   int             `json:"total"`
}

// UpdateHarvestStatusRequest 更新收获记录状态请求
type UpdateHarvestStatusRequest struct {
	Status string `json:"status"`
}

// UpdateTrackingNoRequest 更新快递单号请求（后端会同时把状态置为 shipped）
type UpdateTrackingNoRequest struct {
	TrackingNo string `json:"tracking_no"`
}
