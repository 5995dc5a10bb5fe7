package constant

// 挖挖农场管理端业务常量

// ==================== 管理员角色 ====================

const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleOperator   = "operator"
)

// LabelMeta 展示用标签元数据（label + 标签颜色类型）
type LabelMeta struct {
	Label string
	Type  string
}

// AdminRoleMap 角色展示映射
var AdminRoleMap = map[string]LabelMeta{
	RoleSuperAdmin: {Label: "超级管理员", Type: "error"},
	RoleAdmin:      {Label: "管理员", Type: "warning"},
	RoleOperator:   {Label: "操作员", Type: "info"},
}

// ==================== 用户 / 种子状态 ====================

const (
	StatusNormal   = 0 // 正常 / 启用
	StatusDisabled = 1 // 禁用
)

var UserStatusMap = map[int]LabelMeta{
	StatusNormal:   {Label: "正常", Type: "success"},
	StatusDisabled: {Label: "禁用", Type: "error"},
}

var SeedStatusMap = map[int]LabelMeta{
	StatusNormal:   {Label: "启用", Type: "success"},
	StatusDisabled: {Label: "禁用", Type: "error"},
}

// ==================== 收获记录状态 ====================

// 状态流转：unredeemed → pending → shipped → completed
// cancelled 可以从任意非终态进入
const (
	HarvestUnredeemed = "unredeemed"
	HarvestPending    = "pending"
	HarvestShipped    = "shipped"
	HarvestCompleted  = "completed"
	HarvestCancelled  = "cancelled"
)

var HarvestStatusMap = map[string]LabelMeta{
	HarvestUnredeemed: {Label: "未兑换", Type: "default"},
	HarvestPending:    {Label: "待发货", Type: "warning"},
	HarvestShipped:    {Label: "已发货", Type: "info"},
	HarvestCompleted:  {Label: "已完成", Type: "success"},
	HarvestCancelled:  {Label: "已取消", Type: "error"},
}

// HarvestStatusOptions 列表筛选用选项
var HarvestStatusOptions = []Option{
	{Label: "全部", Value: ""},
	{Label: "未兑换", Value: HarvestUnredeemed},
	{Label: "待发货", Value: HarvestPending},
	{Label: "已发货", Value: HarvestShipped},
	{Label: "已完成", Value: HarvestCompleted},
	{Label: "已取消", Value: HarvestCancelled},
}

// IsHarvestTerminal 是否终态（终态不可再取消）
func IsHarvestTerminal(status string) bool {
	return status == HarvestCompleted || status == HarvestCancelled
}

// ==================== 任务类型 ====================

// Option 下拉选项
type Option struct {
	Label string
	Value string
}

var TaskTypes = []Option{
	{Label: "浏览商品", Value: "browse_product"},
	{Label: "每日登录", Value: "daily_login"},
	{Label: "分享", Value: "share"},
	{Label: "邀请好友", Value: "invite_friend"},
	{Label: "添加到我的小程序", Value: "add_to_home_screen"},
	{Label: "累计肥料奖励", Value: "cumulative_fertilizer_reward"},
	{Label: "跳转小程序", Value: "mini_program_jump"},
}

// ==================== 分页默认值 ====================

const DefaultPageSize = 10

var PageSizeOptions = []int{10, 20, 30, 50, 100}
