package auth

import "farm_admin_v1/internal/api/dto"

// ==================== 身份标签联合 ====================

// UserType 当前登录主体类型
type UserType string

const (
	UserTypeNone    UserType = ""        // 匿名
	UserTypeRegular UserType = "regular" // 普通用户（Token 模式）
	UserTypeAdmin   UserType = "admin"   // 管理员（Cookie 会话模式）
)

// Identity 当前登录主体。
// 不变式：任意时刻只有一个变体生效，切换变体时必须清空另一个变体的字段，
// 避免上一个会话的残留状态泄漏到新会话。
type Identity struct {
	Type  UserType
	User  dto.UserInfo
	Admin dto.AdminInfo
}

// SetRegular 切换到普通用户变体
func (i *Identity) SetRegular(u dto.UserInfo) {
	i.Type = UserTypeRegular
	i.User = u
	i.Admin = dto.AdminInfo{}
}

// SetAdmin 切换到管理员变体
func (i *Identity) SetAdmin(a dto.AdminInfo) {
	i.Type = UserTypeAdmin
	i.Admin = a
	i.User = dto.UserInfo{}
}

// Reset 回到匿名态，清空全部字段
func (i *Identity) Reset() {
	*i = Identity{}
}

// IsAnonymous 是否匿名
func (i *Identity) IsAnonymous() bool {
	return i.Type == UserTypeNone
}
