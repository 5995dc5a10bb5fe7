package dto

// ================== 认证 DTO ==================

// AdminLoginRequest 管理员登录请求（Cookie 会话模式）
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLoginResponse 管理员登录响应
type AdminLoginResponse struct {
	AdminID  int64  `json:"admin_id"`
	Username string `json:"username"`
	Role     string `json:"role"` // super_admin / admin / operator
}

// AdminInfo 管理员信息（/profile）
type AdminInfo struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Status    int    `json:"status"` // 0 正常 1 禁用
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// UserLoginRequest 普通用户登录请求（Token 模式）
type UserLoginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// LoginToken 普通用户登录令牌
type LoginToken struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshTokenRequest 刷新令牌请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UserInfo 普通用户信息（/auth/getUserInfo）
type UserInfo struct {
	UserID   string   `json:"userId"`
	UserName string   `json:"userName"`
	Roles    []string `json:"roles"`
	Buttons  []string `json:"buttons"`
}
