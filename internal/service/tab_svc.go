package service

import (
	"sync"

	"go.uber.org/zap"

	"farm_admin_v1/internal/repository"
)

// ==================== 页签服务 ====================

// Tab 一个已打开的页签
type Tab struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Route string `json:"route"`
}

// TabService 维护控制台已打开的页签列表，并负责跨会话的缓存与清理。
// 换用户登录时由会话服务触发整体清空。
type TabService struct {
	mu    sync.Mutex
	tabs  []Tab
	store *repository.LocalStore
	log   *zap.Logger
}

func NewTabService(store *repository.LocalStore, log *zap.Logger) *TabService {
	return &TabService{store: store, log: log}
}

// AddTab 打开页签（同 key 去重）
func (s *TabService) AddTab(tab Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tabs {
		if t.Key == tab.Key {
			return
		}
	}
	s.tabs = append(s.tabs, tab)
}

// Tabs 当前页签快照
func (s *TabService) Tabs() []Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Tab, len(s.tabs))
	copy(out, s.tabs)
	return out
}

// ClearTabs 清空页签，并删除持久化缓存
func (s *TabService) ClearTabs() {
	s.mu.Lock()
	s.tabs = nil
	s.mu.Unlock()
	if err := s.store.Remove(repository.KeyGlobalTabs); err != nil {
		s.log.Warn("清除页签缓存失败", zap.Error(err))
	}
}

// CacheTabs 把当前页签写入持久化存储
func (s *TabService) CacheTabs() {
	s.mu.Lock()
	tabs := make([]Tab, len(s.tabs))
	copy(tabs, s.tabs)
	s.mu.Unlock()
	if err := s.store.Set(repository.KeyGlobalTabs, tabs); err != nil {
		s.log.Warn("缓存页签失败", zap.Error(err))
	}
}

// RestoreTabs 启动时从持久化存储恢复页签
func (s *TabService) RestoreTabs() {
	var tabs []Tab
	if !s.store.Get(repository.KeyGlobalTabs, &tabs) {
		return
	}
	s.mu.Lock()
	s.tabs = tabs
	s.mu.Unlock()
}
