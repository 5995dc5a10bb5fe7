package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farm_admin_v1/internal/api/dto"
	"farm_admin_v1/internal/constant"
)

func TestPermissionTable(t *testing.T) {
	table, err := NewPermissionTable()
	require.NoError(t, err)

	// 三个角色都能看
	for _, role := range []string{constant.RoleSuperAdmin, constant.RoleAdmin, constant.RoleOperator} {
		assert.True(t, table.Check(constant.ResourceUser, constant.ActionView, role), role)
	}

	// 删除只有超管可以
	assert.True(t, table.Check(constant.ResourceUser, constant.ActionDelete, constant.RoleSuperAdmin))
	assert.False(t, table.Check(constant.ResourceUser, constant.ActionDelete, constant.RoleAdmin))
	assert.False(t, table.Check(constant.ResourceUser, constant.ActionDelete, constant.RoleOperator))

	// 补单只有超管可以
	assert.True(t, table.Check(constant.ResourceOrder, constant.ActionRepair, constant.RoleSuperAdmin))
	assert.False(t, table.Check(constant.ResourceOrder, constant.ActionRepair, constant.RoleAdmin))
}

func TestPermissionTableUnknownEntries(t *testing.T) {
	table, err := NewPermissionTable()
	require.NoError(t, err)

	// 已知资源下未定义的动作：返回 false 而不是报错
	assert.False(t, table.Check(constant.ResourceHarvest, constant.ActionDelete, constant.RoleSuperAdmin))
	// 未知资源 / 未知角色 / 空角色
	assert.False(t, table.Check("unknown", constant.ActionView, constant.RoleSuperAdmin))
	assert.False(t, table.Check(constant.ResourceUser, constant.ActionView, "guest"))
	assert.False(t, table.Check(constant.ResourceUser, constant.ActionView, ""))
}

func TestIdentityExclusive(t *testing.T) {
	var ident Identity
	assert.True(t, ident.IsAnonymous())

	ident.SetAdmin(adminFixture())
	assert.Equal(t, UserTypeAdmin, ident.Type)
	assert.NotZero(t, ident.Admin.ID)

	// 切到普通用户必须清掉管理员痕迹
	ident.SetRegular(userFixture())
	assert.Equal(t, UserTypeRegular, ident.Type)
	assert.Zero(t, ident.Admin.ID)
	assert.Equal(t, "u_1001", ident.User.UserID)

	// 切回管理员同样清掉用户痕迹
	ident.SetAdmin(adminFixture())
	assert.Empty(t, ident.User.UserID)

	ident.Reset()
	assert.True(t, ident.IsAnonymous())
	assert.Zero(t, ident.Admin.ID)
	assert.Empty(t, ident.User.UserID)
}

func adminFixture() dto.AdminInfo {
	return dto.AdminInfo{ID: 1, Username: "super", Role: constant.RoleSuperAdmin}
}

func userFixture() dto.UserInfo {
	return dto.UserInfo{UserID: "u_1001", UserName: "farmer01", Roles: []string{"R_USER"}}
}
