package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once sync.Once
	conf *Config
)

// Config 管理端全局配置
type Config struct {
	App   AppConfig   `mapstructure:"app"`
	API   APIConfig   `mapstructure:"api"`
	Store StoreConfig `mapstructure:"store"`
	Mock  MockConfig  `mapstructure:"mock"`
	Log   LogConfig   `mapstructure:"log"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

// APIConfig 后端接口配置
type APIConfig struct {
	// AdminBaseURL 管理端接口前缀（Cookie 会话模式）
	AdminBaseURL string `mapstructure:"adminBaseUrl"`
	// UserBaseURL 普通用户接口前缀（Token 模式）
	UserBaseURL string `mapstructure:"userBaseUrl"`
	Timeout     int    `mapstructure:"timeout"` // 秒
}

// TimeoutDuration 请求超时
func (c *APIConfig) TimeoutDuration() time.Duration {
	if c.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// StoreConfig 本地存储配置
type StoreConfig struct {
	// Path sqlite 文件路径，空值用默认文件，":memory:" 为内存库
	Path string `mapstructure:"path"`
}

// MockConfig 模拟后端配置
type MockConfig struct {
	Listen string `mapstructure:"listen"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAge     int    `mapstructure:"maxAge"`
	Compress   bool   `mapstructure:"compress"`
}

// Init 初始化配置，重复调用只生效一次
func Init(configPath string) error {
	var err error
	once.Do(func() {
		conf = &Config{}
		err = load(configPath)
	})
	return err
}

func load(configPath string) error {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 缺省值：本地联调直连 mock 后端
	v.SetDefault("app.name", "farm-admin")
	v.SetDefault("app.env", "dev")
	v.SetDefault("api.adminBaseUrl", "http://127.0.0.1:8080/admin/api")
	v.SetDefault("api.userBaseUrl", "http://127.0.0.1:8080")
	v.SetDefault("api.timeout", 30)
	v.SetDefault("mock.listen", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "console")

	if err := v.ReadInConfig(); err != nil {
		// 配置文件可缺省，全部走默认值
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	if err := v.Unmarshal(conf); err != nil {
		return fmt.Errorf("解析配置失败: %w", err)
	}
	return nil
}

// Get 获取配置实例
func Get() *Config {
	if conf == nil {
		panic("config 未初始化，先调用 Init")
	}
	return conf
}
