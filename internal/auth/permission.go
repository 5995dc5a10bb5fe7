package auth

import (
	"fmt"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"

	"farm_admin_v1/internal/constant"
)

// ==================== 权限表 ====================

// RBAC 匹配模型：角色 + 资源 + 动作 精确匹配
const permissionModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// PermissionTable 静态权限表。进程启动时由 constant.Permissions 构建一次，
// 运行期只读。缺失的 (资源, 动作) 或角色一律判为无权限，不报错。
type PermissionTable struct {
	enforcer *casbin.Enforcer
}

// NewPermissionTable 构建权限表
func NewPermissionTable() (*PermissionTable, error) {
	m, err := model.NewModelFromString(permissionModel)
	if err != nil {
		return nil, fmt.Errorf("解析权限模型失败: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("创建权限表失败: %w", err)
	}

	var rules [][]string
	for resource, actions := range constant.Permissions {
		for action, roles := range actions {
			for _, role := range roles {
				rules = append(rules, []string{role, resource, action})
			}
		}
	}
	if _, err := e.AddPolicies(rules); err != nil {
		return nil, fmt.Errorf("加载权限策略失败: %w", err)
	}

	return &PermissionTable{enforcer: e}, nil
}

// Check 判断角色对 (资源, 动作) 是否有权限
func (t *PermissionTable) Check(resource, action, role string) bool {
	if role == "" {
		return false
	}
	ok, err := t.enforcer.Enforce(role, resource, action)
	if err != nil {
		// 精确匹配模型下 Enforce 不应出错，出错时按无权限处理
		return false
	}
	return ok
}
