package api

import (
	"context"

	"farm_admin_v1/internal/api/dto"
	"farm_admin_v1/internal/transport"
)

// ==================== 管理员认证 API ====================

// AdminAuthAPI 管理员认证相关接口（Cookie 会话模式）
type AdminAuthAPI struct {
	client *transport.Client
}

func NewAdminAuthAPI(client *transport.Client) *AdminAuthAPI {
	return &AdminAuthAPI{client: client}
}

// Login 管理员登录，成功后服务端通过 Set-Cookie 下发会话
func (a *AdminAuthAPI) Login(ctx context.Context, username, password string) (*dto.AdminLoginResponse, error) {
	return transport.DoJSON[dto.AdminLoginResponse](ctx, a.client, transport.Request{
		Method: transport.MethodPost,
		URL:    "/login",
		Body:   dto.AdminLoginRequest{Username: username, Password: password},
	})
}

// Logout 管理员登出
func (a *AdminAuthAPI) Logout(ctx context.Context) error {
	_, err := a.client.Do(ctx, transport.Request{
		Method: transport.MethodPost,
		URL:    "/logout",
	})
	return err
}

// Profile 获取管理员信息
func (a *AdminAuthAPI) Profile(ctx context.Context) (*dto.AdminInfo, error) {
	return transport.DoJSON[dto.AdminInfo](ctx, a.client, transport.Request{
		Method: transport.MethodGet,
		URL:    "/profile",
	})
}

// ==================== 普通用户认证 API ====================

// UserAuthAPI 普通用户认证相关接口（Bearer Token 模式）
type UserAuthAPI struct {
	client *transport.Client
}

func NewUserAuthAPI(client *transport.Client) *UserAuthAPI {
	return &UserAuthAPI{client: client}
}

// Login 凭证换取令牌
func (a *UserAuthAPI) Login(ctx context.Context, userName, password string) (*dto.LoginToken, error) {
	return transport.DoJSON[dto.LoginToken](ctx, a.client, transport.Request{
		Method: transport.MethodPost,
		URL:    "/auth/login",
		Body:   dto.UserLoginRequest{UserName: userName, Password: password},
	})
}

// UserInfo 获取当前用户信息（凭请求头中的 token）
func (a *UserAuthAPI) UserInfo(ctx context.Context) (*dto.UserInfo, error) {
	return transport.DoJSON[dto.UserInfo](ctx, a.client, transport.Request{
		Method: transport.MethodGet,
		URL:    "/auth/getUserInfo",
	})
}

// RefreshToken 用 refreshToken 换取新令牌对
func (a *UserAuthAPI) RefreshToken(ctx context.Context, refreshToken string) (*dto.LoginToken, error) {
	return transport.DoJSON[dto.LoginToken](ctx, a.client, transport.Request{
		Method: transport.MethodPost,
		URL:    "/auth/refreshToken",
		Body:   dto.RefreshTokenRequest{RefreshToken: refreshToken},
	})
}
