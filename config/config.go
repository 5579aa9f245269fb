package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port         int        `mapstructure:"port"`
	MaxBodyBytes int64      `mapstructure:"max_body_bytes"`
	CORS         CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL 数据库配置
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 连接最大生命周期（分钟）
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 配置（仅用于 PIN 校验限流，可选）
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig PIN 校验与访问令牌配置
type AuthConfig struct {
	PIN             string        `mapstructure:"pin"`
	PINHash         string        `mapstructure:"pin_hash"` // bcrypt 哈希，优先于明文 pin
	JWTSecret       string        `mapstructure:"jwt_secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RequireToken    bool          `mapstructure:"require_token"`
	RateLimit       int           `mapstructure:"rate_limit"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ScheduleConfig 排班状态判定相关的领域常量
// 角色、分类键、哨兵值等均集中在此处，由调用方显式传入各组件
type ScheduleConfig struct {
	InputFormat   string `mapstructure:"input_format"`
	DisplayFormat string `mapstructure:"display_format"`
	MinDate       string `mapstructure:"min_date"` // 不含当天，首个可查询日期为其后一天
	MaxDate       string `mapstructure:"max_date"` // 含当天

	Sentinels  SentinelConfig `mapstructure:"sentinels"`
	Roles      RoleConfig     `mapstructure:"roles"`
	Categories CategoryConfig `mapstructure:"categories"`

	// SecondarySiteRoles 需要合并第二院区数据的角色
	SecondarySiteRoles []string `mapstructure:"secondary_site_roles"`
	SiteName           string   `mapstructure:"site_name"`
	SiteServiceName    string   `mapstructure:"site_service_name"`

	Placeholder        string `mapstructure:"placeholder"`
	GenericRuleService string `mapstructure:"generic_rule_service"`
	Matcher            string `mapstructure:"matcher"` // regexp | contains
}

// SentinelConfig 数据源中的状态哨兵值
type SentinelConfig struct {
	Off      string `mapstructure:"off"`
	MaybeOff string `mapstructure:"maybe_off"`
	AnyBlock string `mapstructure:"any_block"`
}

// RoleConfig 角色标识
type RoleConfig struct {
	Junior string   `mapstructure:"junior"`
	Senior string   `mapstructure:"senior"`
	Order  []string `mapstructure:"order"`
}

// CategoryConfig 分类键；Order 决定同一成员命中多个分类时的覆盖顺序（后者覆盖前者）
type CategoryConfig struct {
	Off      string   `mapstructure:"off"`
	MaybeOff string   `mapstructure:"maybe_off"`
	NotSure  string   `mapstructure:"not_sure"`
	Order    []string `mapstructure:"order"`
}

// Window 解析后的可查询日期区间 (Min, Max]
type Window struct {
	Min time.Time
	Max time.Time
}

// Window 解析 min_date / max_date
func (c *ScheduleConfig) Window() (Window, error) {
	minDate, err := time.Parse(c.InputFormat, c.MinDate)
	if err != nil {
		return Window{}, fmt.Errorf("schedule.min_date 格式错误: %w", err)
	}
	maxDate, err := time.Parse(c.InputFormat, c.MaxDate)
	if err != nil {
		return Window{}, fmt.Errorf("schedule.max_date 格式错误: %w", err)
	}
	return Window{Min: minDate, Max: maxDate}, nil
}

// UsesSecondarySite 判断角色是否需要合并第二院区数据
func (c *ScheduleConfig) UsesSecondarySite(role string) bool {
	for _, r := range c.SecondarySiteRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "rotation_status")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 30)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// 无默认值的键也需注册，AutomaticEnv 才能在 Unmarshal 时生效
	v.SetDefault("auth.pin", "")
	v.SetDefault("auth.pin_hash", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.access_token_ttl", "12h")
	v.SetDefault("auth.require_token", false)
	v.SetDefault("auth.rate_limit", 10)
	v.SetDefault("auth.rate_limit_window", "1m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("schedule.input_format", "2006-01-02")
	v.SetDefault("schedule.display_format", "01/02/2006")
	v.SetDefault("schedule.min_date", "2023-06-30")
	v.SetDefault("schedule.max_date", "2024-06-30")
	v.SetDefault("schedule.sentinels.off", "OFF")
	v.SetDefault("schedule.sentinels.maybe_off", "MAYBE")
	v.SetDefault("schedule.sentinels.any_block", "Any")
	v.SetDefault("schedule.roles.junior", "intern")
	v.SetDefault("schedule.roles.senior", "resident")
	v.SetDefault("schedule.roles.order", []string{"intern", "resident"})
	v.SetDefault("schedule.categories.off", "off")
	v.SetDefault("schedule.categories.maybe_off", "maybe_off")
	v.SetDefault("schedule.categories.not_sure", "not_sure")
	v.SetDefault("schedule.categories.order", []string{"off", "maybe_off"})
	v.SetDefault("schedule.secondary_site_roles", []string{"resident"})
	v.SetDefault("schedule.site_name", "VA")
	v.SetDefault("schedule.site_service_name", "VA ICU")
	v.SetDefault("schedule.placeholder", ":position")
	v.SetDefault("schedule.generic_rule_service", "*")
	v.SetDefault("schedule.matcher", "regexp")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("ROTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if c.Auth.PIN == "" && c.Auth.PINHash == "" {
		return fmt.Errorf("配置校验失败: auth.pin 与 auth.pin_hash 不能同时为空")
	}
	if c.Auth.RequireToken && len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: 启用 require_token 时 auth.jwt_secret 长度不能少于 16 字符")
	}

	s := &c.Schedule
	w, err := s.Window()
	if err != nil {
		return fmt.Errorf("配置校验失败: %w", err)
	}
	if !w.Max.After(w.Min) {
		return fmt.Errorf("配置校验失败: schedule.max_date 必须晚于 schedule.min_date")
	}
	if s.Sentinels.Off == "" || s.Sentinels.MaybeOff == "" || s.Sentinels.AnyBlock == "" {
		return fmt.Errorf("配置校验失败: schedule.sentinels 不能为空")
	}
	if s.Sentinels.Off == s.Sentinels.MaybeOff {
		return fmt.Errorf("配置校验失败: off 与 maybe_off 哨兵值不能相同")
	}
	if s.Placeholder == "" {
		return fmt.Errorf("配置校验失败: schedule.placeholder 不能为空")
	}
	if len(s.Roles.Order) == 0 {
		return fmt.Errorf("配置校验失败: schedule.roles.order 不能为空")
	}
	cats := s.Categories
	if cats.Off == "" || cats.MaybeOff == "" || cats.NotSure == "" {
		return fmt.Errorf("配置校验失败: schedule.categories 的 off、maybe_off、not_sure 不能为空")
	}
	if cats.Off == cats.MaybeOff || cats.Off == cats.NotSure || cats.MaybeOff == cats.NotSure {
		return fmt.Errorf("配置校验失败: schedule.categories 的分类键不能重复")
	}
	if len(s.Categories.Order) == 0 {
		return fmt.Errorf("配置校验失败: schedule.categories.order 不能为空")
	}
	for _, cat := range s.Categories.Order {
		if cat != s.Categories.Off && cat != s.Categories.MaybeOff {
			return fmt.Errorf("配置校验失败: 未知分类 %q", cat)
		}
	}
	switch s.Matcher {
	case "regexp", "contains":
	default:
		return fmt.Errorf("配置校验失败: schedule.matcher 仅支持 regexp 或 contains")
	}
	return nil
}
