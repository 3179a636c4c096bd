package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blues/launchpad/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Store        StoreConfig        `mapstructure:"store"`
	Contribution ContributionConfig `mapstructure:"contribution"`
	Share        ShareConfig        `mapstructure:"share"`
	Task         TaskConfig         `mapstructure:"task"`
	Log          LogConfig          `mapstructure:"log"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig 存储后端配置，driver 为 memory 时不连接数据库
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // memory, postgres
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// StoreConfig 内存存储的模拟延迟与初始数据
type StoreConfig struct {
	LoadDelay       time.Duration `mapstructure:"load_delay"`
	CreateDelay     time.Duration `mapstructure:"create_delay"`
	ContributeDelay time.Duration `mapstructure:"contribute_delay"`
	SeedFile        string        `mapstructure:"seed_file"`   // 为空时使用内嵌数据
	RebaseSeed      bool          `mapstructure:"rebase_seed"` // 按 as_of 将初始数据的日期平移到启动时间
}

// ContributionConfig 贡献金额限制
type ContributionConfig struct {
	Min           float64 `mapstructure:"min"`
	Max           float64 `mapstructure:"max"`
	RequireActive bool    `mapstructure:"require_active"` // 仅进行中的项目接受贡献
}

// ShareConfig 分享链接配置
type ShareConfig struct {
	BaseURL  string   `mapstructure:"base_url"` // 前端站点地址
	Hashtags []string `mapstructure:"hashtags"`
}

type TaskConfig struct {
	Interval int `mapstructure:"interval"` // 秒
	Workers  int `mapstructure:"workers"`  // 状态任务协程池大小
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

// GetLevel 实现 logger.LogConfig 接口
func (l LogConfig) GetLevel() string {
	return l.Level
}

// GetOutput 实现 logger.LogConfig 接口
func (l LogConfig) GetOutput() string {
	return l.Output
}

// GetFile 实现 logger.LogConfig 接口
func (l LogConfig) GetFile() string {
	return l.File
}

// Load 读取配置：.env -> 配置文件 -> LAUNCHPAD_ 前缀的环境变量。
// path 不为空时只读取该文件，否则按默认目录查找 config.yaml。
func Load(path string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/launchpad")
	}

	setDefaults(v)

	// 自动读取环境变量，例如 LAUNCHPAD_SERVER_PORT
	v.SetEnvPrefix("LAUNCHPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		logger.Warn("Could not find config file, using defaults: %v", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 检查配置之间的约束
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "memory", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Contribution.Min < 0 || c.Contribution.Max < c.Contribution.Min {
		return fmt.Errorf("invalid contribution range [%v, %v]", c.Contribution.Min, c.Contribution.Max)
	}
	if c.Task.Interval <= 0 {
		return fmt.Errorf("task interval must be positive, got %d", c.Task.Interval)
	}
	if c.Task.Workers <= 0 {
		return fmt.Errorf("task workers must be positive, got %d", c.Task.Workers)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("database.driver", "memory")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "launchpad")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("store.load_delay", "1s")
	v.SetDefault("store.create_delay", "2s")
	v.SetDefault("store.contribute_delay", "3s")
	v.SetDefault("store.seed_file", "")
	v.SetDefault("store.rebase_seed", true)
	v.SetDefault("contribution.min", 0.1)
	v.SetDefault("contribution.max", 1000)
	v.SetDefault("contribution.require_active", true)
	v.SetDefault("share.base_url", "http://localhost:3000")
	v.SetDefault("share.hashtags", []string{"Solana", "TokenLaunch"})
	v.SetDefault("task.interval", 60)
	v.SetDefault("task.workers", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file", "logs/app.log")
}
