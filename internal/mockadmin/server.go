package mockadmin

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"farm_admin_v1/internal/api/dto"
	"farm_admin_v1/internal/auth"
	"farm_admin_v1/internal/constant"
	"farm_admin_v1/internal/transport"
)

// ==================== 模拟管理端后端 ====================

// 本包实现与管理端约定一致的假后端：统一响应包装、Cookie 会话、
// Bearer Token、权限矩阵校验、收获记录状态机。
// 数据全部在内存里，用于本地联调和集成测试。

const sessionCookie = "admin_session"

// Server 内存版管理端后端
type Server struct {
	engine *gin.Engine
	perms  *auth.PermissionTable
	secret []byte
	log    *zap.Logger

	mu       sync.Mutex
	admins   []adminAccount
	sessions map[string]int64 // sid -> admin id
	accounts []regularAccount
	refresh  map[string]string // refreshToken -> user id

	users    []userRecord
	seeds    []dto.SeedConfig
	tasks    []dto.TaskConfig
	harvests []dto.HarvestRecord
	orders   map[string]string // order id -> 状态

	nextID int64
}

// adminAccount 管理端账号（Cookie 会话模式）
type adminAccount struct {
	ID       int64
	Username string
	PassHash []byte
	Role     string
	Status   int
}

// regularAccount 普通用户账号（Token 模式）
type regularAccount struct {
	UserID   string
	UserName string
	PassHash []byte
	Roles    []string
	Buttons  []string
}

// userRecord 小程序用户及其游戏状态
type userRecord struct {
	User       dto.FarmUserInfo
	Game       dto.UserGameState
	Identities []dto.UserIdentity
}

// New 创建假后端并装载演示数据
func New(log *zap.Logger) (*Server, error) {
	perms, err := auth.NewPermissionTable()
	if err != nil {
		return nil, err
	}

	s := &Server{
		perms:    perms,
		secret:   []byte("farm-admin-mock-secret"),
		log:      log,
		sessions: make(map[string]int64),
		refresh:  make(map[string]string),
		orders:   make(map[string]string),
	}
	s.seedData()
	s.buildRoutes()
	return s, nil
}

// Engine 暴露底层引擎，测试时配合 httptest 使用
func (s *Server) Engine() *gin.Engine { return s.engine }

// Run 阻塞启动
func (s *Server) Run(addr string) error { return s.engine.Run(addr) }

func (s *Server) buildRoutes() {
	gin.SetMode(gin.ReleaseMode)
	e := gin.New()
	e.Use(gin.Recovery())

	// 普通用户认证（Token 模式）
	e.POST("/auth/login", s.userLogin)
	e.POST("/auth/refreshToken", s.userRefreshToken)
	e.GET("/auth/getUserInfo", s.requireToken(), s.userInfo)

	// 管理端（Cookie 会话模式）
	admin := e.Group("/admin/api")
	admin.POST("/login", s.adminLogin)
	admin.POST("/logout", s.adminLogout)

	authed := admin.Group("", s.requireSession())
	authed.GET("/profile", s.adminProfile)

	authed.GET("/users", s.perm(constant.ResourceUser, constant.ActionView), s.listUsers)
	authed.GET("/users/:id", s.perm(constant.ResourceUser, constant.ActionView), s.userDetail)
	authed.DELETE("/users/:id", s.perm(constant.ResourceUser, constant.ActionDelete), s.deleteUser)
	authed.PUT("/users/:id/status", s.perm(constant.ResourceUser, constant.ActionEdit), s.updateUserStatus)
	authed.POST("/users/:id/fertilizer/adjust", s.perm(constant.ResourceUser, constant.ActionEdit), s.adjustFertilizer)
	authed.PUT("/users/:id/max-daily-fertilize-count", s.perm(constant.ResourceUser, constant.ActionEdit), s.updateMaxFertilize)

	authed.GET("/seeds", s.perm(constant.ResourceSeed, constant.ActionView), s.listSeeds)
	authed.GET("/seeds/:id", s.perm(constant.ResourceSeed, constant.ActionView), s.seedDetail)
	authed.POST("/seeds", s.perm(constant.ResourceSeed, constant.ActionCreate), s.createSeed)
	authed.PUT("/seeds/:id", s.perm(constant.ResourceSeed, constant.ActionEdit), s.updateSeed)
	authed.DELETE("/seeds/:id", s.perm(constant.ResourceSeed, constant.ActionDelete), s.deleteSeed)
	authed.PUT("/seeds/:id/status", s.perm(constant.ResourceSeed, constant.ActionEdit), s.updateSeedStatus)

	authed.GET("/tasks", s.perm(constant.ResourceTask, constant.ActionView), s.listTasks)
	authed.GET("/tasks/:id", s.perm(constant.ResourceTask, constant.ActionView), s.taskDetail)
	authed.POST("/tasks", s.perm(constant.ResourceTask, constant.ActionCreate), s.createTask)
	authed.PUT("/tasks/:id", s.perm(constant.ResourceTask, constant.ActionEdit), s.updateTask)
	authed.DELETE("/tasks/:id", s.perm(constant.ResourceTask, constant.ActionDelete), s.deleteTask)

	authed.GET("/harvest", s.perm(constant.ResourceHarvest, constant.ActionView), s.listHarvests)
	authed.GET("/harvest/:id", s.perm(constant.ResourceHarvest, constant.ActionView), s.harvestDetail)
	authed.PUT("/harvest/:id/status", s.perm(constant.ResourceHarvest, constant.ActionEdit), s.updateHarvestStatus)
	authed.PUT("/harvest/:id/tracking-no", s.perm(constant.ResourceHarvest, constant.ActionEdit), s.updateTrackingNo)

	authed.POST("/orders/repair/pay", s.perm(constant.ResourceOrder, constant.ActionRepair), s.repairPay)
	authed.POST("/orders/repair/cancel", s.perm(constant.ResourceOrder, constant.ActionRepair), s.repairCancel)

	s.engine = e
}

// ==================== 响应包装 ====================

// 约定：HTTP 层恒为 200，业务成败只看包装里的 code
func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"code": transport.CodeOK, "message": "ok", "data": data})
}

func fail(c *gin.Context, code int, msg string) {
	c.JSON(http.StatusOK, gin.H{"code": code, "message": msg, "data": nil})
}

// ==================== 管理员认证 ====================

func (s *Server) adminLogin(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, "请求参数错误")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.admins {
		if a.Username != req.Username {
			continue
		}
		if a.Status == constant.StatusDisabled {
			fail(c, 403, "账号已禁用")
			return
		}
		if bcrypt.CompareHashAndPassword(a.PassHash, []byte(req.Password)) != nil {
			break
		}
		sid := uuid.NewString()
		s.sessions[sid] = a.ID
		c.SetCookie(sessionCookie, sid, 86400, "/", "", false, true)
		ok(c, dto.AdminLoginResponse{AdminID: a.ID, Username: a.Username, Role: a.Role})
		return
	}
	fail(c, 1001, "用户名或密码错误")
}

func (s *Server) adminLogout(c *gin.Context) {
	if sid, err := c.Cookie(sessionCookie); err == nil {
		s.mu.Lock()
		delete(s.sessions, sid)
		s.mu.Unlock()
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	ok(c, nil)
}

func (s *Server) adminProfile(c *gin.Context) {
	a := s.currentAdmin(c)
	ok(c, dto.AdminInfo{
		ID:        a.ID,
		Username:  a.Username,
		Role:      a.Role,
		Status:    a.Status,
		CreatedAt: "2025-01-01 00:00:00",
		UpdatedAt: now(),
	})
}

// requireSession 校验 Cookie 会话，失效返回业务码 401
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookie)
		if err != nil {
			fail(c, transport.CodeUnauthorized, "会话已失效")
			c.Abort()
			return
		}
		s.mu.Lock()
		id, exists := s.sessions[sid]
		s.mu.Unlock()
		if !exists {
			fail(c, transport.CodeUnauthorized, "会话已失效")
			c.Abort()
			return
		}
		c.Set("adminID", id)
	}
}

// perm 权限矩阵校验，不过返回业务码 403
func (s *Server) perm(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		a := s.currentAdmin(c)
		if a == nil || !s.perms.Check(resource, action, a.Role) {
			fail(c, transport.CodeForbidden, "无权限访问")
			c.Abort()
			return
		}
	}
}

func (s *Server) currentAdmin(c *gin.Context) *adminAccount {
	id, exists := c.Get("adminID")
	if !exists {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.admins {
		if s.admins[i].ID == id.(int64) {
			return &s.admins[i]
		}
	}
	return nil
}

// ==================== 普通用户认证 ====================

func (s *Server) userLogin(c *gin.Context) {
	var req dto.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, "请求参数错误")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.UserName != req.UserName ||
			bcrypt.CompareHashAndPassword(a.PassHash, []byte(req.Password)) != nil {
			continue
		}
		pair, err := s.issueTokenPair(a.UserID)
		if err != nil {
			fail(c, 500, "令牌签发失败")
			return
		}
		ok(c, pair)
		return
	}
	fail(c, 1001, "用户名或密码错误")
}

func (s *Server) userRefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, "请求参数错误")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	uid, exists := s.refresh[req.RefreshToken]
	if !exists {
		fail(c, transport.CodeUnauthorized, "刷新令牌无效")
		return
	}
	// 刷新令牌一次性使用，换发即作废
	delete(s.refresh, req.RefreshToken)
	pair, err := s.issueTokenPair(uid)
	if err != nil {
		fail(c, 500, "令牌签发失败")
		return
	}
	ok(c, pair)
}

func (s *Server) userInfo(c *gin.Context) {
	uid := c.GetString("userID")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.UserID == uid {
			ok(c, dto.UserInfo{
				UserID:   a.UserID,
				UserName: a.UserName,
				Roles:    a.Roles,
				Buttons:  a.Buttons,
			})
			return
		}
	}
	fail(c, transport.CodeUnauthorized, "用户不存在")
}

// requireToken 校验 Bearer Token，失效返回业务码 401
func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		const prefix = "Bearer "
		header := c.GetHeader("Authorization")
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
			fail(c, transport.CodeUnauthorized, "未携带令牌")
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(header[len(prefix):], claims, func(t *jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			fail(c, transport.CodeUnauthorized, "令牌已失效")
			c.Abort()
			return
		}
		sub, _ := claims.GetSubject()
		c.Set("userID", sub)
	}
}

// issueTokenPair 签发访问令牌（2 小时）和刷新令牌。调用方持锁。
func (s *Server) issueTokenPair(uid string) (dto.LoginToken, error) {
	claims := jwt.MapClaims{
		"sub": uid,
		"jti": uuid.NewString(), // 同一秒内多次签发也要保证令牌不同
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(2 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return dto.LoginToken{}, err
	}
	refresh := uuid.NewString()
	s.refresh[refresh] = uid
	return dto.LoginToken{Token: token, RefreshToken: refresh}, nil
}

func now() string {
	return time.Now().Format("2006-01-02 15:04:05")
}
