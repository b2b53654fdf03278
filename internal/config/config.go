package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DedupBackendMemory = "memory"
	DedupBackendRedis  = "redis"

	envPrefix      = "admission"
	defaultEnvFile = ".env"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Policy   PolicyConfig   `toml:"policy"`
	Dedup    DedupConfig    `toml:"dedup"`
	Redis    RedisConfig    `toml:"redis"`
	Workflow WorkflowConfig `toml:"workflow"`
	Identity IdentityConfig `toml:"identity"`
	CORS     CORSConfig     `toml:"cors"`
	Notifier NotifierConfig `toml:"notifier"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"-"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	AutoMigrate     bool   `toml:"auto_migrate"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения в формате URL, её понимают и lib/pq, и golang-migrate
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type PolicyConfig struct {
	CapacityPerDate  int `toml:"capacity_per_date"`
	MinLeadDays      int `toml:"min_lead_days"`
	MaxHorizonMonths int `toml:"max_horizon_months"`
}

type DedupConfig struct {
	Backend     string `toml:"backend"`     // memory | redis
	Suppression int    `toml:"suppression"` // секунды
	Retention   int    `toml:"retention"`   // секунды
	KeyPrefix   string `toml:"key_prefix"`
}

func (d DedupConfig) SuppressionInterval() time.Duration {
	return time.Duration(d.Suppression) * time.Second
}

func (d DedupConfig) RetentionInterval() time.Duration {
	return time.Duration(d.Retention) * time.Second
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"-"`
	DB       int    `toml:"db"`
}

type WorkflowConfig struct {
	BookingURL   string `toml:"booking_url"`
	CancelURL    string `toml:"cancel_url"`
	ApprovedURL  string `toml:"approved_url"`
	DeclinedURL  string `toml:"declined_url"`
	CompletedURL string `toml:"completed_url"`
	SecretHeader string `toml:"secret_header"`
	Secret       string `toml:"-"`
	Timeout      int    `toml:"timeout"` // секунды
}

type IdentityConfig struct {
	Issuer string `toml:"issuer"`
	Leeway int    `toml:"leeway"` // секунды
	Secret string `toml:"-"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type NotifierConfig struct {
	Enabled     bool `toml:"enabled"`
	Workers     int  `toml:"workers"`
	BufferSize  int  `toml:"buffer_size"`
	MaxAttempts int  `toml:"max_attempts"`
	BaseDelay   int  `toml:"base_delay_ms"`
	MaxDelay    int  `toml:"max_delay_ms"`
	SendTimeout int  `toml:"send_timeout"` // секунды
}

// secrets значения, которые не хранятся в TOML и приходят из окружения (ADMISSION_*)
type secrets struct {
	DBPassword     string `envconfig:"DB_PASSWORD"`
	RedisPassword  string `envconfig:"REDIS_PASSWORD"`
	JWTSecret      string `envconfig:"JWT_SECRET"`
	WorkflowSecret string `envconfig:"WORKFLOW_SECRET"`
}

// Load читает TOML по path, подгружает .env (если есть) и накладывает переменные ADMISSION_*
func Load(path string) (*Config, error) {
	return load(path, defaultEnvFile)
}

func load(path, envFile string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	var s secrets
	if err := envconfig.Process(envPrefix, &s); err != nil {
		return nil, fmt.Errorf("config: read environment: %w", err)
	}
	cfg.applySecrets(s)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applySecrets(s secrets) {
	if s.DBPassword != "" {
		c.Database.Password = s.DBPassword
	}
	if s.RedisPassword != "" {
		c.Redis.Password = s.RedisPassword
	}
	if s.JWTSecret != "" {
		c.Identity.Secret = s.JWTSecret
	}
	if s.WorkflowSecret != "" {
		c.Workflow.Secret = s.WorkflowSecret
	}
}

// Validate проверяет согласованность значений до запуска сервиса
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port out of range: %d", c.Server.HTTPPort))
	}
	if c.Policy.CapacityPerDate < 1 {
		problems = append(problems, "policy.capacity_per_date must be at least 1")
	}
	if c.Policy.MinLeadDays < 0 {
		problems = append(problems, "policy.min_lead_days must not be negative")
	}
	if c.Policy.MaxHorizonMonths < 1 {
		problems = append(problems, "policy.max_horizon_months must be at least 1")
	}

	switch c.Dedup.Backend {
	case DedupBackendMemory:
	case DedupBackendRedis:
		if c.Redis.Addr == "" {
			problems = append(problems, "redis.addr is required for dedup.backend = redis")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown dedup.backend %q", c.Dedup.Backend))
	}
	if c.Dedup.Suppression <= 0 {
		problems = append(problems, "dedup.suppression must be positive")
	}
	if c.Dedup.Suppression > c.Dedup.Retention {
		problems = append(problems, "dedup.suppression must not exceed dedup.retention")
	}

	if c.Identity.Secret == "" {
		problems = append(problems, "identity secret is required (ADMISSION_JWT_SECRET)")
	}
	if c.Notifier.Enabled && c.Notifier.MaxAttempts < 1 {
		problems = append(problems, "notifier.max_attempts must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "admission",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "admission-service",
		},
		Policy: PolicyConfig{
			CapacityPerDate:  10,
			MinLeadDays:      14,
			MaxHorizonMonths: 3,
		},
		Dedup: DedupConfig{
			Backend:     DedupBackendMemory,
			Suppression: 30,
			Retention:   300,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Workflow: WorkflowConfig{
			SecretHeader: "x-internal-secret",
			Timeout:      10,
		},
		Notifier: NotifierConfig{
			Enabled:     true,
			Workers:     2,
			BufferSize:  256,
			MaxAttempts: 5,
			BaseDelay:   500,
			MaxDelay:    30000,
			SendTimeout: 10,
		},
	}
}
