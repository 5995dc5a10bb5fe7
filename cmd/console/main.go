package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"farm_admin_v1/internal/api"
	"farm_admin_v1/internal/api/dto"
	"farm_admin_v1/internal/auth"
	"farm_admin_v1/internal/config"
	"farm_admin_v1/internal/constant"
	"farm_admin_v1/internal/repository"
	"farm_admin_v1/internal/service"
	"farm_admin_v1/internal/task"
	"farm_admin_v1/internal/transport"
	"farm_admin_v1/pkg/logger"
	"farm_admin_v1/pkg/utils"
)

// 管理端命令行入口。子命令:
//
//	login <用户名> <密码>        普通用户登录
//	admin-login <用户名> <密码>  管理员登录
//	logout                       登出
//	whoami                       当前会话信息
//	users [页码]                 用户列表
//	user <id>                    用户详情
//	seeds / tasks                种子 / 任务列表
//	harvests [状态]              收获记录列表
//	track <id> <单号>            更新快递单号（同时置为已发货）
//	repair-pay <订单号>          补单支付
//	repair-cancel <订单号>       补单取消
func main() {
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		panic(err)
	}
	cfg := config.Get()
	logger.Init(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		Filename:   cfg.Log.Filename,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})
	log := logger.Get()
	defer logger.Sync()

	deps, err := initDependencies(cfg, log)
	if err != nil {
		log.Fatal("初始化失败", zap.Error(err))
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := dispatch(ctx, deps, args); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		os.Exit(1)
	}
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	Store *repository.LocalStore
	Tabs  *service.TabService
	Auth  *service.AuthService

	UserAPI    *api.UserAPI
	SeedAPI    *api.SeedAPI
	TaskAPI    *api.TaskAPI
	HarvestAPI *api.HarvestAPI
	OrderAPI   *api.OrderAPI
}

// initDependencies 装配存储、两个传输适配器、资源 API 和会话服务
func initDependencies(cfg *config.Config, log *zap.Logger) (*Dependencies, error) {
	store, err := repository.NewLocalStore(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	notifier := &consoleNotifier{}
	router := &consoleRouter{}

	// 管理端走 Cookie 会话，普通用户走 Bearer Token，两套适配器
	adminClient := transport.New(transport.Options{
		BaseURL:         cfg.API.AdminBaseURL,
		WithCredentials: true,
		Timeout:         cfg.API.TimeoutDuration(),
	}, notifier, log)
	userClient := transport.New(transport.Options{
		BaseURL:       cfg.API.UserBaseURL,
		Timeout:       cfg.API.TimeoutDuration(),
		TokenProvider: store.Token,
	}, notifier, log)

	perms, err := auth.NewPermissionTable()
	if err != nil {
		return nil, err
	}

	tabs := service.NewTabService(store, log)
	tabs.RestoreTabs()

	authSvc := service.NewAuthService(service.AuthDeps{
		Store:     store,
		Tabs:      tabs,
		UserAuth:  api.NewUserAuthAPI(userClient),
		AdminAuth: api.NewAdminAuthAPI(adminClient),
		Perms:     perms,
		Router:    router,
		Notifier:  notifier,
		Logger:    log,
	})
	// 会话端口依赖会话服务本体，装配完成后回绑
	adminClient.BindSession(authSvc)
	userClient.BindSession(authSvc)

	sessionTask := task.NewSessionTask(authSvc, log)
	if err := sessionTask.Start(); err != nil {
		return nil, err
	}

	return &Dependencies{
		Store:      store,
		Tabs:       tabs,
		Auth:       authSvc,
		UserAPI:    api.NewUserAPI(adminClient),
		SeedAPI:    api.NewSeedAPI(adminClient),
		TaskAPI:    api.NewTaskAPI(adminClient),
		HarvestAPI: api.NewHarvestAPI(adminClient),
		OrderAPI:   api.NewOrderAPI(adminClient),
	}, nil
}

// ==================== 端口实现 ====================

// consoleNotifier 把通知打到标准输出
type consoleNotifier struct{}

func (consoleNotifier) Error(msg string) {
	fmt.Println("[错误]", msg)
}

func (consoleNotifier) Success(title, content string) {
	fmt.Printf("[%s] %s\n", title, content)
}

func (consoleNotifier) Confirm(title, content string, onConfirm func()) {
	// 命令行没有对话框，提示后直接按确认处理
	fmt.Printf("[%s] %s\n", title, content)
	onConfirm()
}

// consoleRouter 命令行没有页面路由，跳转只做日志性输出
type consoleRouter struct{}

func (consoleRouter) ToLogin() {
	fmt.Println("会话已失效，请重新登录")
}

func (consoleRouter) RedirectFromLogin(redirect bool) {
	if redirect {
		fmt.Println("已跳转到上次访问的页面")
	}
}

func (consoleRouter) IsConstantRoute() bool { return false }

// ==================== 子命令 ====================

func dispatch(ctx context.Context, deps *Dependencies, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		if len(rest) < 2 {
			return fmt.Errorf("用法: login <用户名> <密码>")
		}
		return deps.Auth.Login(ctx, rest[0], rest[1], true)

	case "admin-login":
		if len(rest) < 2 {
			return fmt.Errorf("用法: admin-login <用户名> <密码>")
		}
		success, err := deps.Auth.AdminLogin(ctx, rest[0], rest[1], true)
		if err == nil && !success {
			return fmt.Errorf("登录失败")
		}
		return err

	case "logout":
		deps.Auth.Logout(ctx)
		fmt.Println("已登出")
		return nil

	case "whoami":
		return whoami(ctx, deps)

	case "users":
		return listUsers(ctx, deps, rest)

	case "user":
		if len(rest) < 1 {
			return fmt.Errorf("用法: user <id>")
		}
		return userDetail(ctx, deps, rest[0])

	case "seeds":
		return listSeeds(ctx, deps)

	case "tasks":
		return listTasks(ctx, deps)

	case "harvests":
		status := ""
		if len(rest) > 0 {
			status = rest[0]
		}
		return listHarvests(ctx, deps, status)

	case "track":
		if len(rest) < 2 {
			return fmt.Errorf("用法: track <id> <单号>")
		}
		return updateTracking(ctx, deps, rest[0], rest[1])

	case "repair-pay":
		if len(rest) < 1 {
			return fmt.Errorf("用法: repair-pay <订单号>")
		}
		return deps.OrderAPI.RepairPay(ctx, rest[0])

	case "repair-cancel":
		if len(rest) < 1 {
			return fmt.Errorf("用法: repair-cancel <订单号>")
		}
		return deps.OrderAPI.RepairCancel(ctx, rest[0])

	default:
		return fmt.Errorf("未知命令: %s", cmd)
	}
}

func whoami(ctx context.Context, deps *Dependencies) error {
	// 先尝试用持久化凭证恢复会话
	if !deps.Auth.IsLogin() {
		deps.Auth.InitUserInfo(ctx)
	}
	if !deps.Auth.IsLogin() {
		fmt.Println("未登录")
		return nil
	}

	fmt.Println("用户名:", deps.Auth.Username())
	fmt.Println("身份:", deps.Auth.UserType())
	if role := deps.Auth.Role(); role != "" {
		meta, known := constant.AdminRoleMap[role]
		if known {
			fmt.Printf("角色: %s (%s)\n", meta.Label, role)
		} else {
			fmt.Println("角色:", role)
		}
	}
	for _, resource := range []string{constant.ResourceUser, constant.ResourceSeed, constant.ResourceHarvest, constant.ResourceOrder} {
		for _, action := range []string{constant.ActionView, constant.ActionEdit, constant.ActionDelete, constant.ActionRepair} {
			if deps.Auth.HasPermission(resource, action) {
				fmt.Printf("权限: %s:%s\n", resource, action)
			}
		}
	}
	return nil
}

func listUsers(ctx context.Context, deps *Dependencies, rest []string) error {
	page := 1
	if len(rest) > 0 {
		if n, err := strconv.Atoi(rest[0]); err == nil {
			page = n
		}
	}
	resp, err := deps.UserAPI.List(ctx, dto.PaginationParams{Page: page, PageSize: constant.DefaultPageSize})
	if err != nil || resp == nil {
		return err
	}
	fmt.Printf("共 %s 个用户（第 %d 页）\n", utils.FormatNumber(resp.Total), resp.Page)
	for _, u := range resp.List {
		status := constant.UserStatusMap[u.Status].Label
		fmt.Printf("  #%d %s [%s] 最近登录 %s\n",
			u.ID, u.Nickname, status, utils.FormatRelativeTime(u.LastLoginAt))
	}
	return nil
}

func userDetail(ctx context.Context, deps *Dependencies, idArg string) error {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		return fmt.Errorf("无效的 id: %s", idArg)
	}
	detail, err := deps.UserAPI.Detail(ctx, id)
	if err != nil || detail == nil {
		return err
	}
	fmt.Printf("#%d %s\n", detail.User.ID, detail.User.Nickname)
	fmt.Println("  注册时间:", utils.FormatDateTime(detail.User.CreatedAt))
	fmt.Printf("  等级 %d，成长值 %s，肥料 %s\n",
		detail.GameState.Level,
		utils.FormatNumber(detail.GameState.Growth),
		utils.FormatNumber(detail.GameState.FertilizerAmount))
	for _, ident := range detail.Identities {
		fmt.Printf("  绑定: %s %s\n", ident.IdentityType, utils.MaskSensitive(ident.OpenID, 3, 4))
	}
	return nil
}

func listSeeds(ctx context.Context, deps *Dependencies) error {
	resp, err := deps.SeedAPI.List(ctx, dto.PaginationParams{Page: 1, PageSize: constant.DefaultPageSize})
	if err != nil || resp == nil {
		return err
	}
	for _, seed := range resp.List {
		fmt.Printf("  #%d %s [%s] %s\n",
			seed.ID, seed.Name, constant.SeedStatusMap[seed.Status].Label, seed.RewardType)
	}
	return nil
}

func listTasks(ctx context.Context, deps *Dependencies) error {
	resp, err := deps.TaskAPI.List(ctx, dto.PaginationParams{Page: 1, PageSize: constant.DefaultPageSize})
	if err != nil || resp == nil {
		return err
	}
	for _, t := range resp.List {
		enabled := "停用"
		if t.IsEnabled {
			enabled = "启用"
		}
		fmt.Printf("  #%d %s (%s) 奖励 %s [%s]\n",
			t.ID, t.TaskName, t.TaskType, utils.FormatNumber(t.Reward), enabled)
	}
	return nil
}

func listHarvests(ctx context.Context, deps *Dependencies, status string) error {
	resp, err := deps.HarvestAPI.List(ctx, dto.HarvestListParams{Page: 1, PageSize: constant.DefaultPageSize, Status: status})
	if err != nil || resp == nil {
		return err
	}
	fmt.Printf("共 %d 条收获记录\n", resp.Total)
	for _, h := range resp.Records {
		fmt.Printf("  #%d %s [%s] %s %s\n",
			h.ID, h.SeedData.Name,
			constant.HarvestStatusMap[h.Status].Label,
			utils.FormatAddressShort(&h.AddressData),
			utils.FormatPhone(h.AddressData.Phone))
	}
	return nil
}

func updateTracking(ctx context.Context, deps *Dependencies, idArg, trackingNo string) error {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		return fmt.Errorf("无效的 id: %s", idArg)
	}
	record, err := deps.HarvestAPI.UpdateTrackingNo(ctx, id, trackingNo)
	if err != nil || record == nil {
		return err
	}
	fmt.Printf("#%d 已更新单号 %s，当前状态 %s\n",
		record.ID, record.TrackingNo, constant.HarvestStatusMap[record.Status].Label)
	return nil
}
