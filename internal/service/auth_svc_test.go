package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"farm_admin_v1/internal/api"
	"farm_admin_v1/internal/auth"
	"farm_admin_v1/internal/constant"
	"farm_admin_v1/internal/mockadmin"
	"farm_admin_v1/internal/repository"
	"farm_admin_v1/internal/transport"
)

// ==================== 测试辅助 ====================

type fakeNotifier struct {
	mu        sync.Mutex
	errors    []string
	successes []string
}

func (n *fakeNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *fakeNotifier) Success(title, content string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, title+":"+content)
}

func (n *fakeNotifier) Confirm(title, content string, onConfirm func()) {
	onConfirm()
}

type fakeRouter struct {
	mu            sync.Mutex
	toLoginCount  int
	redirects     []bool
	constantRoute bool
}

func (r *fakeRouter) ToLogin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toLoginCount++
}

func (r *fakeRouter) RedirectFromLogin(redirect bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redirects = append(r.redirects, redirect)
}

func (r *fakeRouter) IsConstantRoute() bool { return r.constantRoute }

func (r *fakeRouter) loginJumps() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.toLoginCount
}

func (r *fakeRouter) lastRedirect() (bool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.redirects) == 0 {
		return false, false
	}
	return r.redirects[len(r.redirects)-1], true
}

type harness struct {
	svc      *AuthService
	store    *repository.LocalStore
	tabs     *TabService
	notifier *fakeNotifier
	router   *fakeRouter

	userAuth  *api.UserAuthAPI
	adminAuth *api.AdminAuthAPI
	perms     *auth.PermissionTable
}

// newHarness 用给定后端地址装配一套完整的会话服务
func newHarness(t *testing.T, adminBase, userBase string) *harness {
	t.Helper()
	log := zap.NewNop()

	store, err := repository.NewLocalStore(":memory:")
	require.NoError(t, err)

	notifier := &fakeNotifier{}
	router := &fakeRouter{}
	adminClient := transport.New(transport.Options{
		BaseURL: adminBase, WithCredentials: true, Timeout: 5 * time.Second,
	}, notifier, log)
	userClient := transport.New(transport.Options{
		BaseURL: userBase, Timeout: 5 * time.Second, TokenProvider: store.Token,
	}, notifier, log)

	perms, err := auth.NewPermissionTable()
	require.NoError(t, err)

	tabs := NewTabService(store, log)
	userAuth := api.NewUserAuthAPI(userClient)
	adminAuth := api.NewAdminAuthAPI(adminClient)
	svc := NewAuthService(AuthDeps{
		Store:     store,
		Tabs:      tabs,
		UserAuth:  userAuth,
		AdminAuth: adminAuth,
		Perms:     perms,
		Router:    router,
		Notifier:  notifier,
		Logger:    log,
	})
	adminClient.BindSession(svc)
	userClient.BindSession(svc)

	return &harness{
		svc: svc, store: store, tabs: tabs, notifier: notifier, router: router,
		userAuth: userAuth, adminAuth: adminAuth, perms: perms,
	}
}

// newMockHarness 起一个完整的模拟后端
func newMockHarness(t *testing.T) *harness {
	t.Helper()
	server, err := mockadmin.New(zap.NewNop())
	require.NoError(t, err)
	ts := httptest.NewServer(server.Engine())
	t.Cleanup(ts.Close)
	return newHarness(t, ts.URL+"/admin/api", ts.URL)
}

// rebuild 用同一批依赖重新装配会话服务，模拟进程重启
func (h *harness) rebuild() *AuthService {
	return NewAuthService(AuthDeps{
		Store:     h.store,
		Tabs:      h.tabs,
		UserAuth:  h.userAuth,
		AdminAuth: h.adminAuth,
		Perms:     h.perms,
		Router:    h.router,
		Notifier:  h.notifier,
		Logger:    zap.NewNop(),
	})
}

func writeEnvelope(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"code": code, "message": "", "data": data})
}

// ==================== 管理员登录 ====================

func TestAdminLoginSuccess(t *testing.T) {
	h := newMockHarness(t)
	ctx := context.Background()

	success, err := h.svc.AdminLogin(ctx, "operator", "operator123", true)
	require.NoError(t, err)
	require.True(t, success)

	assert.True(t, h.svc.IsLogin())
	assert.Equal(t, auth.UserTypeAdmin, h.svc.UserType())
	assert.Equal(t, constant.RoleOperator, h.svc.Role())
	assert.True(t, h.svc.IsOperator())
	assert.NotEmpty(t, h.notifier.successes)

	redirect, called := h.router.lastRedirect()
	assert.True(t, called)
	assert.True(t, redirect)
}

func TestAdminLoginWrongPassword(t *testing.T) {
	h := newMockHarness(t)

	success, err := h.svc.AdminLogin(context.Background(), "admin", "wrong", true)
	assert.False(t, success)

	var bizErr *transport.BusinessError
	require.ErrorAs(t, err, &bizErr)
	assert.False(t, h.svc.IsLogin())
	assert.Equal(t, auth.UserTypeNone, h.svc.UserType())
}

func TestAdminPermissions(t *testing.T) {
	h := newMockHarness(t)
	ctx := context.Background()

	_, err := h.svc.AdminLogin(ctx, "super", "super123", false)
	require.NoError(t, err)
	assert.True(t, h.svc.IsSuperAdmin())
	assert.True(t, h.svc.HasPermission(constant.ResourceUser, constant.ActionDelete))
	assert.True(t, h.svc.HasPermission(constant.ResourceOrder, constant.ActionRepair))

	_, err = h.svc.AdminLogin(ctx, "operator", "operator123", false)
	require.NoError(t, err)
	assert.True(t, h.svc.HasPermission(constant.ResourceUser, constant.ActionView))
	assert.False(t, h.svc.HasPermission(constant.ResourceUser, constant.ActionDelete))
	assert.False(t, h.svc.HasPermission(constant.ResourceOrder, constant.ActionRepair))
}

// ==================== 普通用户登录 ====================

func TestUserLoginAndIdentityExclusive(t *testing.T) {
	h := newMockHarness(t)
	ctx := context.Background()

	// 先登录管理员，再切普通用户，管理员痕迹必须被清掉
	_, err := h.svc.AdminLogin(ctx, "admin", "admin123", false)
	require.NoError(t, err)
	require.Equal(t, auth.UserTypeAdmin, h.svc.UserType())

	require.NoError(t, h.svc.Login(ctx, "farmer01", "farmer123", true))
	assert.Equal(t, auth.UserTypeRegular, h.svc.UserType())
	assert.Zero(t, h.svc.AdminInfo().ID)
	assert.Equal(t, "u_1001", h.svc.UserInfo().UserID)
	assert.Equal(t, "farmer01", h.svc.Username())
	assert.NotEmpty(t, h.store.Token())

	// 普通用户没有管理端权限
	assert.False(t, h.svc.HasPermission(constant.ResourceUser, constant.ActionView))
}

func TestUserLoginWrongPassword(t *testing.T) {
	h := newMockHarness(t)

	err := h.svc.Login(context.Background(), "farmer01", "bad", true)
	require.Error(t, err)
	assert.False(t, h.svc.IsLogin())
	assert.Empty(t, h.store.Token())
}

// ==================== 页签清空判定 ====================

func TestTabClearOnUserSwitch(t *testing.T) {
	h := newMockHarness(t)
	ctx := context.Background()

	h.tabs.AddTab(Tab{Key: "users", Label: "用户管理", Route: "/users"})

	// 首次登录：没有上次登录标记，清空页签，抑制默认跳转
	require.NoError(t, h.svc.Login(ctx, "farmer01", "farmer123", true))
	assert.Empty(t, h.tabs.Tabs())
	redirect, called := h.router.lastRedirect()
	require.True(t, called)
	assert.False(t, redirect)

	// 登出记录离场用户，再登录同一用户：页签保留，正常跳转
	h.tabs.AddTab(Tab{Key: "seeds", Label: "种子管理", Route: "/seeds"})
	h.svc.Logout(ctx)
	last, exists := h.store.LastLoginUserID()
	require.True(t, exists)
	assert.Equal(t, "u_1001", last)

	require.NoError(t, h.svc.Login(ctx, "farmer01", "farmer123", true))
	assert.Len(t, h.tabs.Tabs(), 1)
	redirect, _ = h.router.lastRedirect()
	assert.True(t, redirect)

	// 换一个用户登录：页签清空
	h.tabs.AddTab(Tab{Key: "tasks", Label: "任务管理", Route: "/tasks"})
	h.svc.Logout(ctx)
	require.NoError(t, h.svc.Login(ctx, "farmer02", "farmer456", true))
	assert.Empty(t, h.tabs.Tabs())
}

func TestCheckTabClearWithoutUser(t *testing.T) {
	h := newMockHarness(t)
	// 匿名态：无论标记如何都不清空
	require.NoError(t, h.store.SetLastLoginUserID("u_9999"))
	assert.False(t, h.svc.CheckTabClear())
	// 没有当前用户时不动存储，标记原样保留
	_, exists := h.store.LastLoginUserID()
	assert.True(t, exists)
}

// ==================== 重置幂等 ====================

func TestResetStoreExactlyOnce(t *testing.T) {
	h := newMockHarness(t)
	ctx := context.Background()

	require.NoError(t, h.svc.Login(ctx, "farmer01", "farmer123", false))
	require.True(t, h.svc.IsLogin())

	// 模拟并发 401 触发的多次失效
	h.svc.Invalidate()
	h.svc.Invalidate()
	h.svc.Invalidate()

	assert.False(t, h.svc.IsLogin())
	assert.Empty(t, h.store.Token())
	// 可见副作用只发生一次
	assert.Equal(t, 1, h.router.loginJumps())
}

func TestResetStoreOnConstantRoute(t *testing.T) {
	h := newMockHarness(t)
	ctx := context.Background()

	require.NoError(t, h.svc.Login(ctx, "farmer01", "farmer123", false))
	h.router.constantRoute = true
	h.svc.Invalidate()

	// 公共路由上不强制跳登录
	assert.Zero(t, h.router.loginJumps())
	assert.False(t, h.svc.IsLogin())
}

// ==================== 登录期间的竞态 ====================

func TestLoginGuardRejectsDoubleSubmit(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		<-release
		writeEnvelope(w, 1001, nil)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	h := newHarness(t, ts.URL+"/admin/api", ts.URL)

	done := make(chan error, 1)
	go func() {
		done <- h.svc.Login(context.Background(), "farmer01", "farmer123", false)
	}()

	// 等第一笔登录进入挂起
	require.Eventually(t, h.svc.LoginLoading, 2*time.Second, 10*time.Millisecond)
	err := h.svc.Login(context.Background(), "farmer01", "farmer123", false)
	assert.ErrorIs(t, err, ErrLoginInProgress)

	close(release)
	assert.Error(t, <-done)
	assert.False(t, h.svc.LoginLoading())
}

func TestProfileFetchFailureClearsOrphanToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 0, map[string]string{"token": "tok", "refreshToken": "ref"})
	})
	mux.HandleFunc("/auth/getUserInfo", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 5000, nil)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	h := newHarness(t, ts.URL+"/admin/api", ts.URL)
	err := h.svc.Login(context.Background(), "farmer01", "farmer123", false)
	require.Error(t, err)

	// 凭证交换成功但档案失败：孤儿令牌必须被清掉
	assert.Empty(t, h.store.Token())
	assert.Empty(t, h.store.RefreshToken())
	assert.False(t, h.svc.IsLogin())
}

func TestResetDuringLoginSuspension(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 0, map[string]string{"token": "tok", "refreshToken": "ref"})
	})
	// 档案请求期间会话被判失效：401 路径触发重置
	mux.HandleFunc("/auth/getUserInfo", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, transport.CodeUnauthorized, nil)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	h := newHarness(t, ts.URL+"/admin/api", ts.URL)
	err := h.svc.Login(context.Background(), "farmer01", "farmer123", false)
	require.Error(t, err)

	// 登录结果被放弃，终态是干净的匿名态
	assert.False(t, h.svc.IsLogin())
	assert.Empty(t, h.store.Token())
	assert.Equal(t, 1, h.router.loginJumps())
}

// ==================== 启动水合 ====================

func TestInitUserInfoRestoresSession(t *testing.T) {
	h := newMockHarness(t)
	ctx := context.Background()

	require.NoError(t, h.svc.Login(ctx, "farmer01", "farmer123", false))
	token := h.store.Token()

	restored := h.rebuild()
	assert.True(t, restored.IsLogin()) // 令牌从存储带出

	restored.InitUserInfo(ctx)
	assert.Equal(t, auth.UserTypeRegular, restored.UserType())
	assert.Equal(t, "farmer01", restored.Username())
	assert.Equal(t, token, h.store.Token())
}

func TestInitUserInfoWithBadTokenResets(t *testing.T) {
	h := newMockHarness(t)
	require.NoError(t, h.store.SetTokenPair("伪造的令牌", "ref"))

	restored := h.rebuild()
	restored.InitUserInfo(context.Background())
	assert.False(t, restored.IsLogin())
	assert.Empty(t, h.store.Token())
}

func TestInitAdminInfoWithoutSessionResets(t *testing.T) {
	h := newMockHarness(t)

	h.svc.InitAdminInfo(context.Background())
	assert.False(t, h.svc.IsLogin())
	assert.Equal(t, auth.UserTypeNone, h.svc.UserType())
}

// ==================== 令牌续期 ====================

func TestRefreshSession(t *testing.T) {
	h := newMockHarness(t)
	ctx := context.Background()

	require.NoError(t, h.svc.Login(ctx, "farmer01", "farmer123", false))
	oldToken := h.store.Token()
	oldRefresh := h.store.RefreshToken()

	// 距过期还有约 2 小时，1 分钟阈值内不续期
	assert.False(t, h.svc.RefreshSession(ctx, time.Minute))
	assert.Equal(t, oldToken, h.store.Token())

	// 阈值放宽到 3 小时就触发续期，令牌对整体轮换
	assert.True(t, h.svc.RefreshSession(ctx, 3*time.Hour))
	assert.NotEqual(t, oldToken, h.store.Token())
	assert.NotEqual(t, oldRefresh, h.store.RefreshToken())
	assert.True(t, h.svc.IsLogin())
}

func TestRefreshSessionWithoutToken(t *testing.T) {
	h := newMockHarness(t)
	assert.False(t, h.svc.RefreshSession(context.Background(), time.Hour))
}
