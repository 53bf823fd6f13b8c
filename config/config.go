// Package config 提供网站的配置加载功能
// 基于viper实现，支持配置文件、环境变量和默认值三级覆盖
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	File     FileConfig     `mapstructure:"file"`
	Session  SessionConfig  `mapstructure:"session"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP服务器配置
type ServerConfig struct {
	Port          int    `mapstructure:"port"`           // HTTP监听端口
	ReadTimeout   int    `mapstructure:"read_timeout"`   // 读超时（秒）
	WriteTimeout  int    `mapstructure:"write_timeout"`  // 写超时（秒）
	EnableHTTPS   bool   `mapstructure:"enable_https"`   // 是否启用HTTPS
	EnableHTTP2   bool   `mapstructure:"enable_http2"`   // 是否启用HTTP/2（仅HTTPS下生效）
	HTTPSPort     int    `mapstructure:"https_port"`     // HTTPS监听端口
	TLSCertFile   string `mapstructure:"tls_cert_file"`  // TLS证书路径
	TLSKeyFile    string `mapstructure:"tls_key_file"`   // TLS私钥路径
	TemplatesGlob string `mapstructure:"templates_glob"` // HTML模板的glob路径
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`            // 数据库驱动，目前仅支持sqlite
	DSN             string `mapstructure:"dsn"`               // 数据库连接串
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	MaxOpenConns    int    `mapstructure:"max_open_conns"`    // 最大打开连接数
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 连接最大生命周期（秒）
}

// FileConfig 上传文件存储配置
type FileConfig struct {
	StoragePath       string   `mapstructure:"storage_path"`       // 上传文件存储目录
	MaxFileSize       int64    `mapstructure:"max_file_size"`      // 单文件最大字节数
	AllowedExtensions []string `mapstructure:"allowed_extensions"` // 允许的扩展名，"*"表示不限制
}

// SessionConfig 会话配置
type SessionConfig struct {
	Secret string `mapstructure:"secret"`  // Cookie签名密钥
	MaxAge int    `mapstructure:"max_age"` // 会话有效期（秒）
}

// AdminConfig 默认管理员配置
// 仅在对应用户名不存在时用于初始化种子数据
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`     // 日志级别 (debug, info, warn, error)
	Format   string `mapstructure:"format"`    // 日志格式 (json, text)
	Output   string `mapstructure:"output"`    // 输出方式 (console, file, both)
	FilePath string `mapstructure:"file_path"` // 日志文件路径
}

// Load 加载应用配置
// 优先级：环境变量 > 配置文件(config.yaml) > 默认值
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// 环境变量覆盖，例如 WEBSITE_SESSION_SECRET
	v.SetEnvPrefix("WEBSITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// 配置文件不存在时使用默认值，其余错误直接返回
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults 设置默认配置
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.enable_https", false)
	v.SetDefault("server.enable_http2", true)
	v.SetDefault("server.https_port", 8443)
	v.SetDefault("server.tls_cert_file", "certs/server.crt")
	v.SetDefault("server.tls_key_file", "certs/server.key")
	v.SetDefault("server.templates_glob", "web/templates/*.html")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "data/website.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 3600)

	v.SetDefault("file.storage_path", "data/uploads")
	v.SetDefault("file.max_file_size", 50*1024*1024)
	v.SetDefault("file.allowed_extensions", []string{"*"})

	v.SetDefault("session.secret", "change-me-in-production")
	v.SetDefault("session.max_age", 86400)

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "admin123")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.file_path", "logs/app.log")
}
