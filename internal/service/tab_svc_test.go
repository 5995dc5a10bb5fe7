package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"farm_admin_v1/internal/repository"
)

func TestTabServiceCacheAndRestore(t *testing.T) {
	store, err := repository.NewLocalStore(":memory:")
	require.NoError(t, err)

	tabs := NewTabService(store, zap.NewNop())
	tabs.AddTab(Tab{Key: "users", Label: "用户管理", Route: "/users"})
	tabs.AddTab(Tab{Key: "seeds", Label: "种子管理", Route: "/seeds"})
	// 同 key 去重
	tabs.AddTab(Tab{Key: "users", Label: "用户管理", Route: "/users"})
	assert.Len(t, tabs.Tabs(), 2)

	tabs.CacheTabs()

	// 新实例从存储恢复
	restored := NewTabService(store, zap.NewNop())
	restored.RestoreTabs()
	assert.Equal(t, tabs.Tabs(), restored.Tabs())

	// 清空同时删掉缓存
	restored.ClearTabs()
	assert.Empty(t, restored.Tabs())
	empty := NewTabService(store, zap.NewNop())
	empty.RestoreTabs()
	assert.Empty(t, empty.Tabs())
}
