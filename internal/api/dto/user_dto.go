package dto

// ================== 用户管理 DTO ==================

// FarmUserInfo 小程序用户基本信息
type FarmUserInfo struct {
	ID          int64  `json:"id"`
	Nickname    string `json:"nickname"`
	AvatarURL   string `json:"avatar_url"`
	Status      int    `json:"status"` // 0 正常 1 禁用
	LastLoginAt string `json:"last_login_at"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// UserGameState 用户游戏状态
type UserGameState struct {
	Level             int   `json:"level"`
	Growth            int64 `json:"growth"`
	TotalGrowth       int64 `json:"total_growth"`
	FertilizerAmount  int64 `json:"fertilizer_amount"`
	MaxDailyFertilize int   `json:"max_daily_fertilize_count"`
	CurrentSeedID     int64 `json:"current_seed_id"`
	CurrentRoundID    int64 `json:"current_round_id"`
	CanHarvest        bool  `json:"can_harvest"`
	IsHarvested       bool  `json:"is_harvested"`
}

// UserIdentity 用户第三方登录信息
type UserIdentity struct {
	IdentityType string `json:"identity_type"`
	OpenID       string `json:"open_id"`
	UnionID      string `json:"union_id"`
	CreatedAt    string `json:"created_at"`
}

// UserDetail 用户详情
type UserDetail struct {
	User       FarmUserInfo   `json:"user"`
	GameState  UserGameState  `json:"game_state"`
	Identities []UserIdentity `json:"identities"`
}

// UserListResponse 用户列表响应
type UserListResponse = PaginationResponse[FarmUserInfo]

// UpdateUserStatusRequest 更新用户状态请求
type UpdateUserStatusRequest struct {
	Status int `json:"status"`
}

// AdjustFertilizerRequest 调整肥料请求
type AdjustFertilizerRequest struct {
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

// UpdateMaxFertilizeCountRequest 更新每日最大施肥次数请求
type UpdateMaxFertilizeCountRequest struct {
	MaxDailyFertilizeCount int `json:"max_daily_fertilize_count"`
}
