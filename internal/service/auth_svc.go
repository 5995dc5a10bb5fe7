package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"farm_admin_v1/internal/api"
	"farm_admin_v1/internal/api/dto"
	"farm_admin_v1/internal/auth"
	"farm_admin_v1/internal/constant"
	"farm_admin_v1/internal/repository"
	"farm_admin_v1/internal/transport"
)

// ==================== 会话服务 ====================

// ErrLoginInProgress 已有登录在进行中，拒绝重复提交
var ErrLoginInProgress = errors.New("登录进行中，请勿重复提交")

// RouterPort 路由跳转端口，由外层（UI / CLI）实现
type RouterPort interface {
	// ToLogin 跳转到登录入口
	ToLogin()
	// RedirectFromLogin 登录成功后的跳转，redirect 为 false 时只回首页不做默认跳转
	RedirectFromLogin(redirect bool)
	// IsConstantRoute 当前路由是否为公共路由（公共路由上重置会话不强制跳登录）
	IsConstantRoute() bool
}

// AuthDeps 会话服务的装配依赖
type AuthDeps struct {
	Store     *repository.LocalStore
	Tabs      *TabService
	UserAuth  *api.UserAuthAPI
	AdminAuth *api.AdminAuthAPI
	Perms     *auth.PermissionTable
	Router    RouterPort
	Notifier  transport.Notifier
	Logger    *zap.Logger
}

// AuthService 会话与身份状态机。
//
// 状态迁移：匿名 → 普通用户（Login）；匿名 → 管理员（AdminLogin）；
// 任意非匿名态 → 匿名（ResetStore）。身份是二选一的：
// 切到一种身份会清掉另一种的全部痕迹。
//
// 状态变更由 mu 串行化，但逻辑竞争仍然存在：一次慢登录可能在并发重置
// 之后才返回，所以迁移前要重查当前状态，不能假定状态单调前进。
type AuthService struct {
	mu           sync.Mutex
	identity     auth.Identity
	token        string
	loginLoading bool

	store     *repository.LocalStore
	tabs      *TabService
	userAuth  *api.UserAuthAPI
	adminAuth *api.AdminAuthAPI
	perms     *auth.PermissionTable
	router    RouterPort
	notifier  transport.Notifier
	log       *zap.Logger
}

// NewAuthService 工厂方法。启动时从持久化存储带出令牌，
// 档案由 InitUserInfo / InitAdminInfo 补拉。
func NewAuthService(deps AuthDeps) *AuthService {
	return &AuthService{
		token:     deps.Store.Token(),
		store:     deps.Store,
		tabs:      deps.Tabs,
		userAuth:  deps.UserAuth,
		adminAuth: deps.AdminAuth,
		perms:     deps.Perms,
		router:    deps.Router,
		notifier:  deps.Notifier,
		log:       deps.Logger,
	}
}

// ==================== 登录 ====================

// beginLogin 获取登录闸门。闸门只防止重复提交，
// 不对外部触发的重置提供互斥保证。
func (s *AuthService) beginLogin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loginLoading {
		return false
	}
	s.loginLoading = true
	return true
}

func (s *AuthService) endLogin() {
	s.mu.Lock()
	s.loginLoading = false
	s.mu.Unlock()
}

// LoginLoading 是否有登录在进行中
func (s *AuthService) LoginLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginLoading
}

// Login 普通用户登录。流程：
// 凭证交换 → 令牌落盘 → 拉取用户档案 → 迁移到普通用户态 →
// 判定页签清空 → 跳转 → 成功通知。
// 档案拉取成功之前不发生状态迁移。
func (s *AuthService) Login(ctx context.Context, userName, password string, redirect bool) error {
	if !s.beginLogin() {
		return ErrLoginInProgress
	}
	defer s.endLogin()

	pair, err := s.userAuth.Login(ctx, userName, password)
	if err != nil || pair == nil {
		// 凭证交换失败：回到干净的匿名态
		s.ResetStore()
		if err == nil {
			err = errors.New("登录失败")
		}
		return err
	}

	if !s.loginByToken(ctx, pair) {
		return errors.New("获取用户信息失败")
	}

	// 换了用户要清空页签；清空页签的登录不做默认跳转
	isClear := s.CheckTabClear()
	s.router.RedirectFromLogin(redirect && !isClear)

	s.mu.Lock()
	name := s.identity.User.UserName
	s.mu.Unlock()
	s.notifier.Success("登录成功", fmt.Sprintf("欢迎回来，%s", name))
	s.log.Info("用户登录成功", zap.String("userName", name))
	return nil
}

func (s *AuthService) loginByToken(ctx context.Context, pair *dto.LoginToken) bool {
	// 先落盘：档案请求要从请求头带上这个令牌
	if err := s.store.SetTokenPair(pair.Token, pair.RefreshToken); err != nil {
		s.log.Error("持久化令牌失败", zap.Error(err))
		return false
	}

	// 挂起点：档案请求期间，其他请求收到的 401 可能已把会话重置
	info, err := s.userAuth.UserInfo(ctx)
	if err != nil || info == nil {
		// 档案拉取失败：立即清掉孤儿令牌，状态保持匿名
		if cerr := s.store.ClearAuth(); cerr != nil {
			s.log.Warn("清除孤儿令牌失败", zap.Error(cerr))
		}
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// 重查：存储里的令牌已不是我们写入的那个，说明期间发生过重置
	if s.store.Token() != pair.Token {
		s.log.Warn("登录期间会话被重置，放弃本次登录结果")
		return false
	}
	s.identity.SetRegular(*info)
	s.token = pair.Token
	return true
}

// AdminLogin 管理员登录（Cookie 会话模式）。
// 凭证交换和档案拉取都成功才算登录成功。
func (s *AuthService) AdminLogin(ctx context.Context, username, password string, redirect bool) (bool, error) {
	if !s.beginLogin() {
		return false, ErrLoginInProgress
	}
	defer s.endLogin()

	resp, err := s.adminAuth.Login(ctx, username, password)
	if err != nil || resp == nil {
		return false, err
	}

	if !s.GetAdminProfile(ctx) {
		return false, nil
	}

	if redirect {
		s.router.RedirectFromLogin(true)
	}
	s.notifier.Success("登录成功", fmt.Sprintf("欢迎回来，%s", resp.Username))
	s.log.Info("管理员登录成功",
		zap.String("username", resp.Username),
		zap.String("role", resp.Role),
	)
	return true, nil
}

// GetAdminProfile 拉取管理员档案并迁移到管理员态
func (s *AuthService) GetAdminProfile(ctx context.Context) bool {
	info, err := s.adminAuth.Profile(ctx)
	if err != nil || info == nil {
		return false
	}
	s.mu.Lock()
	s.identity.SetAdmin(*info)
	s.mu.Unlock()
	return true
}

// ==================== 登出与重置 ====================

// Logout 登出。服务端失效是尽力而为的，失败也要保证本地登出成功。
func (s *AuthService) Logout(ctx context.Context) {
	s.mu.Lock()
	isAdmin := s.identity.Type == auth.UserTypeAdmin
	s.mu.Unlock()

	if isAdmin {
		if err := s.adminAuth.Logout(ctx); err != nil {
			s.log.Warn("服务端登出失败，继续本地登出", zap.Error(err))
		}
	}
	s.ResetStore()
}

// ResetStore 重置会话：记录离场的普通用户 id、清空身份、清除令牌存储、
// 缓存页签，并在非公共路由上跳回登录页。
// 幂等：对已是匿名且存储为空的会话再次调用不产生副作用，
// 并发收到多个 401 也只发生一次可见的重置。
func (s *AuthService) ResetStore() {
	s.mu.Lock()
	hadState := s.identity.Type != auth.UserTypeNone || s.token != "" || s.store.Token() != ""
	if s.identity.Type == auth.UserTypeRegular && s.identity.User.UserID != "" {
		if err := s.store.SetLastLoginUserID(s.identity.User.UserID); err != nil {
			s.log.Warn("记录上次登录用户失败", zap.Error(err))
		}
	}
	s.identity.Reset()
	s.token = ""
	s.mu.Unlock()

	if !hadState {
		return
	}

	if err := s.store.ClearAuth(); err != nil {
		s.log.Warn("清除令牌存储失败", zap.Error(err))
	}
	if !s.router.IsConstantRoute() {
		s.router.ToLogin()
	}
	s.tabs.CacheTabs()
	s.log.Info("会话已重置")
}

// Invalidate 实现 transport.SessionInvalidator，401/403 兜底触发
func (s *AuthService) Invalidate() {
	s.ResetStore()
}

// CheckTabClear 对比本次登录用户与上次登录用户。
// 不同（或没有记录）时清空全部页签并返回 true；相同时只清除标记返回 false。
// 必须在档案填充之后、跳转之前调用。
func (s *AuthService) CheckTabClear() bool {
	s.mu.Lock()
	uid := s.identity.User.UserID
	s.mu.Unlock()
	if uid == "" {
		return false
	}

	last, ok := s.store.LastLoginUserID()
	if !ok || last != uid {
		s.tabs.ClearTabs()
		if err := s.store.RemoveLastLoginUserID(); err != nil {
			s.log.Warn("清除登录标记失败", zap.Error(err))
		}
		return true
	}

	if err := s.store.RemoveLastLoginUserID(); err != nil {
		s.log.Warn("清除登录标记失败", zap.Error(err))
	}
	return false
}

// ==================== 启动水合 ====================

// InitUserInfo 启动时用存储的令牌恢复普通用户会话，
// 失败则重置，避免"有令牌但档案未知"的悬空状态。
func (s *AuthService) InitUserInfo(ctx context.Context) {
	token := s.store.Token()
	if token == "" {
		return
	}
	info, err := s.userAuth.UserInfo(ctx)
	if err != nil || info == nil {
		s.ResetStore()
		return
	}
	s.mu.Lock()
	s.identity.SetRegular(*info)
	s.token = token
	s.mu.Unlock()
}

// InitAdminInfo 启动时用 Cookie 会话恢复管理员身份，失败则重置
func (s *AuthService) InitAdminInfo(ctx context.Context) {
	if s.GetAdminProfile(ctx) {
		return
	}
	s.ResetStore()
}

// ==================== 令牌续期 ====================

// RefreshSession 检查访问令牌剩余有效期，临期（within 以内）时
// 用 refreshToken 换新令牌对。返回是否执行了续期。
// 续期失败只告警，交给后续请求的 401 路径清理会话。
func (s *AuthService) RefreshSession(ctx context.Context, within time.Duration) bool {
	token := s.store.Token()
	if token == "" {
		return false
	}
	exp, ok := tokenExpiry(token)
	if !ok || time.Until(exp) > within {
		return false
	}

	refresh := s.store.RefreshToken()
	if refresh == "" {
		return false
	}
	pair, err := s.userAuth.RefreshToken(ctx, refresh)
	if err != nil || pair == nil {
		s.log.Warn("令牌续期失败，等待会话自然失效", zap.Error(err))
		return false
	}
	if err := s.store.SetTokenPair(pair.Token, pair.RefreshToken); err != nil {
		s.log.Warn("持久化新令牌失败", zap.Error(err))
		return false
	}

	s.mu.Lock()
	if s.identity.Type == auth.UserTypeRegular {
		s.token = pair.Token
	}
	s.mu.Unlock()
	s.log.Info("访问令牌已续期")
	return true
}

// tokenExpiry 读取 JWT 的 exp 声明。只看时间，不校验签名。
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// ==================== 派生查询 ====================

// UserType 当前身份类型
func (s *AuthService) UserType() auth.UserType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity.Type
}

// IsLogin 是否已登录：管理员看档案 id，普通用户看令牌
func (s *AuthService) IsLogin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity.Type == auth.UserTypeAdmin {
		return s.identity.Admin.ID != 0
	}
	return s.token != ""
}

// Role 当前角色：管理员取档案角色（缺省按操作员），普通用户取首个角色
func (s *AuthService) Role() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.identity.Type {
	case auth.UserTypeAdmin:
		if s.identity.Admin.Role != "" {
			return s.identity.Admin.Role
		}
		return constant.RoleOperator
	case auth.UserTypeRegular:
		if len(s.identity.User.Roles) > 0 {
			return s.identity.User.Roles[0]
		}
	}
	return ""
}

// Username 当前展示用用户名
func (s *AuthService) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.identity.Type {
	case auth.UserTypeAdmin:
		return s.identity.Admin.Username
	case auth.UserTypeRegular:
		return s.identity.User.UserName
	}
	return ""
}

// IsSuperAdmin 是否超级管理员
func (s *AuthService) IsSuperAdmin() bool { return s.Role() == constant.RoleSuperAdmin }

// IsAdmin 是否管理员
func (s *AuthService) IsAdmin() bool { return s.Role() == constant.RoleAdmin }

// IsOperator 是否操作员
func (s *AuthService) IsOperator() bool {
	return s.UserType() == auth.UserTypeAdmin && s.Role() == constant.RoleOperator
}

// AdminInfo 管理员档案快照
func (s *AuthService) AdminInfo() dto.AdminInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity.Admin
}

// UserInfo 普通用户档案快照
func (s *AuthService) UserInfo() dto.UserInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity.User
}

// HasPermission 判断当前身份对 (资源, 动作) 是否有权限。
// 只读当前状态和静态权限表，不发网络请求。
// 非管理员身份（匿名、普通用户）一律无权限。
func (s *AuthService) HasPermission(resource, action string) bool {
	s.mu.Lock()
	if s.identity.Type != auth.UserTypeAdmin {
		s.mu.Unlock()
		return false
	}
	role := s.identity.Admin.Role
	if role == "" {
		role = constant.RoleOperator
	}
	s.mu.Unlock()
	return s.perms.Check(resource, action, role)
}
