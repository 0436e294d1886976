package config

import (
	"github.com/ZcashUsersGroup/zdabe/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Explorer  ExplorerConfig  `mapstructure:"explorer"`
	Rates     RatesConfig     `mapstructure:"rates"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Wallet    WalletConfig    `mapstructure:"wallet"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ExplorerConfig 地址看板服务配置
type ExplorerConfig struct {
	BaseURL   string `mapstructure:"base_url"`   // 浏览器API根地址
	TimeoutMs int    `mapstructure:"timeout_ms"` // 单次查询超时（毫秒）
}

// RatesConfig 汇率数据源配置
type RatesConfig struct {
	BaseURL         string `mapstructure:"base_url"`          // 行情API根地址
	TimeoutMs       int    `mapstructure:"timeout_ms"`        // 单次查询超时（毫秒）
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds"` // 汇率缓存有效期（秒）
}

// RateLimitConfig 入站请求限流配置
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"` // 每IP每分钟请求数
	Burst             int `mapstructure:"burst"`               // 突发请求上限
}

// WalletConfig 钱包余额聚合配置
type WalletConfig struct {
	MaxConcurrentLookups int `mapstructure:"max_concurrent_lookups"` // 地址查询最大并发数
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/zdabe")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "zdabe")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("explorer.base_url", "https://api.blockchair.com")
	viper.SetDefault("explorer.timeout_ms", 10000)
	viper.SetDefault("rates.base_url", "https://api.coingecko.com")
	viper.SetDefault("rates.timeout_ms", 5000)
	viper.SetDefault("rates.cache_ttl_seconds", 30)
	viper.SetDefault("ratelimit.requests_per_minute", 10)
	viper.SetDefault("ratelimit.burst", 10)
	viper.SetDefault("wallet.max_concurrent_lookups", 4)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
