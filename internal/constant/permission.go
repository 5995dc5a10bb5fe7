package constant

// ==================== 权限矩阵 ====================

// 权限资源名
const (
	ResourceUser    = "user"
	ResourceSeed    = "seed"
	ResourceTask    = "task"
	ResourceHarvest = "harvest"
	ResourceOrder   = "order"
)

// 权限动作名
const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
	ActionRepair = "repair"
)

// Permissions 静态权限矩阵：资源 → 动作 → 允许的角色
// 进程启动时加载进权限表，运行期不变更。
// 缺失的 (资源, 动作) 对任何角色都视为无权限。
var Permissions = map[string]map[string][]string{
	ResourceUser: {
		ActionView:   {RoleSuperAdmin, RoleAdmin, RoleOperator},
		ActionEdit:   {RoleSuperAdmin, RoleAdmin},
		ActionDelete: {RoleSuperAdmin},
	},
	ResourceSeed: {
		ActionView:   {RoleSuperAdmin, RoleAdmin, RoleOperator},
		ActionCreate: {RoleSuperAdmin, RoleAdmin},
		ActionEdit:   {RoleSuperAdmin, RoleAdmin},
		ActionDelete: {RoleSuperAdmin},
	},
	ResourceTask: {
		ActionView:   {RoleSuperAdmin, RoleAdmin, RoleOperator},
		ActionCreate: {RoleSuperAdmin, RoleAdmin},
		ActionEdit:   {RoleSuperAdmin, RoleAdmin},
		ActionDelete: {RoleSuperAdmin},
	},
	ResourceHarvest: {
		ActionView: {RoleSuperAdmin, RoleAdmin, RoleOperator},
		ActionEdit: {RoleSuperAdmin, RoleAdmin},
	},
	ResourceOrder: {
		ActionRepair: {RoleSuperAdmin},
	},
}
