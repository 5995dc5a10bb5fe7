package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// ==================== 本地持久化存储 ====================

// 约定的存储键
const (
	KeyToken           = "token"
	KeyRefreshToken    = "refreshToken"
	KeyLastLoginUserID = "lastLoginUserId"
	KeyGlobalTabs      = "globalTabs"
)

// KVItem 本地键值存储表
type KVItem struct {
	Key       string         `gorm:"primaryKey;size:64"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (KVItem) TableName() string { return "local_kv" }

// LocalStore 控制台侧的持久化存储：登录令牌、上次登录用户、页签缓存。
// 用 sqlite 落盘，测试时可以用 :memory: 数据库。
type LocalStore struct {
	db *gorm.DB
}

// NewLocalStore 打开（或创建）本地存储文件
func NewLocalStore(path string) (*LocalStore, error) {
	if path == "" {
		path = "farm_admin.db"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("打开本地存储失败: %w", err)
	}
	if err := db.AutoMigrate(&KVItem{}); err != nil {
		return nil, fmt.Errorf("初始化本地存储失败: %w", err)
	}
	return &LocalStore{db: db}, nil
}

// Set 写入（存在则覆盖）
func (s *LocalStore) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化 %s 失败: %w", key, err)
	}
	item := KVItem{Key: key, Value: datatypes.JSON(raw), UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&item).Error
}

// Get 读取并反序列化到 out，键不存在返回 false
func (s *LocalStore) Get(key string, out any) bool {
	var item KVItem
	if err := s.db.First(&item, "key = ?", key).Error; err != nil {
		return false
	}
	return json.Unmarshal(item.Value, out) == nil
}

// Remove 删除键（不存在时静默）
func (s *LocalStore) Remove(key string) error {
	return s.db.Delete(&KVItem{}, "key = ?", key).Error
}

// ==================== 类型化的便捷方法 ====================

// Token 当前存储的访问令牌，不存在返回空串
func (s *LocalStore) Token() string {
	var token string
	s.Get(KeyToken, &token)
	return token
}

// RefreshToken 当前存储的刷新令牌
func (s *LocalStore) RefreshToken() string {
	var token string
	s.Get(KeyRefreshToken, &token)
	return token
}

// SetTokenPair 持久化令牌对
func (s *LocalStore) SetTokenPair(token, refreshToken string) error {
	if err := s.Set(KeyToken, token); err != nil {
		return err
	}
	return s.Set(KeyRefreshToken, refreshToken)
}

// ClearAuth 清除令牌存储
func (s *LocalStore) ClearAuth() error {
	if err := s.Remove(KeyToken); err != nil {
		return err
	}
	return s.Remove(KeyRefreshToken)
}

// LastLoginUserID 上次登录用户 id，ok 表示是否有记录
func (s *LocalStore) LastLoginUserID() (id string, ok bool) {
	ok = s.Get(KeyLastLoginUserID, &id)
	return id, ok && id != ""
}

// SetLastLoginUserID 记录上次登录用户 id，供下次登录对比
func (s *LocalStore) SetLastLoginUserID(id string) error {
	return s.Set(KeyLastLoginUserID, id)
}

// RemoveLastLoginUserID 清除上次登录用户标记
func (s *LocalStore) RemoveLastLoginUserID() error {
	return s.Remove(KeyLastLoginUserID)
}
