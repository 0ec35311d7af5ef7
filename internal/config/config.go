package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{"config.yaml", "config.yml"}

// Config holds application level configuration loaded at process start.
type Config struct {
	ServerPort string         `koanf:"port"`
	BaseURL    string         `koanf:"base_url"`
	Session    SessionConfig  `koanf:"session"`
	Paystack   PaystackConfig `koanf:"paystack"`
	Database   DatabaseConfig `koanf:"db"`
	Redis      RedisConfig    `koanf:"redis"`
	Log        LogConfig      `koanf:"log"`
	Security   SecurityConfig `koanf:"security"`
	SeedDir    string         `koanf:"seed_dir"`
}

// SessionConfig configures the signed session cookie and its server-side record.
type SessionConfig struct {
	Secret     string        `koanf:"secret"`
	TTL        time.Duration `koanf:"ttl"`
	CookieName string        `koanf:"cookie_name"`
	Secure     bool          `koanf:"secure"`
}

// PaystackConfig configures the payment gateway client.
type PaystackConfig struct {
	SecretKey       string        `koanf:"secret_key"`
	BaseURL         string        `koanf:"base_url"`
	Timeout         time.Duration `koanf:"timeout"`
	ReferencePrefix string        `koanf:"reference_prefix"`
}

// DatabaseConfig selects the gorm dialector and its DSN.
type DatabaseConfig struct {
	Driver string `koanf:"driver"`
	DSN    string `koanf:"dsn"`
	Reset  bool   `koanf:"reset"`
}

// RedisConfig configures the session and cache store. An empty Addr selects the in-process store.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// LogConfig configures zerolog output.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// SecurityConfig toggles request-level protections.
type SecurityConfig struct {
	CSRFEnabled        bool `koanf:"csrf_enabled"`
	RateLimitPerMinute int  `koanf:"rate_limit_per_minute"`
}

// envMappings maps the process environment onto koanf keys.
var envMappings = map[string]string{
	"port":                     "port",
	"base_url":                 "base_url",
	"session_secret":           "session.secret",
	"session_ttl":              "session.ttl",
	"session_cookie_name":      "session.cookie_name",
	"session_secure":           "session.secure",
	"paystack_secret_key":      "paystack.secret_key",
	"paystack_base_url":        "paystack.base_url",
	"paystack_timeout":         "paystack.timeout",
	"payment_reference_prefix": "paystack.reference_prefix",
	"db_driver":                "db.driver",
	"db_dsn":                   "db.dsn",
	"reset_db":                 "db.reset",
	"redis_addr":               "redis.addr",
	"redis_password":           "redis.password",
	"redis_db":                 "redis.db",
	"log_level":                "log.level",
	"log_format":               "log.format",
	"csrf_enabled":             "security.csrf_enabled",
	"rate_limit_per_minute":    "security.rate_limit_per_minute",
	"seed_dir":                 "seed_dir",
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		ServerPort: "3000",
		Session: SessionConfig{
			Secret:     "dev-secret",
			TTL:        24 * time.Hour,
			CookieName: "neotech_session",
		},
		Paystack: PaystackConfig{
			BaseURL:         "https://api.paystack.co",
			Timeout:         30 * time.Second,
			ReferencePrefix: "neotech",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "data/neotech.sqlite",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Security: SecurityConfig{
			CSRFEnabled:        true,
			RateLimitPerMinute: 200,
		},
		SeedDir: "data",
	}
}

// Load builds Config from defaults, an optional YAML file and the environment, in that order.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.ServerPort
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with. A missing Paystack key is allowed:
// gateway calls then go out without credentials and fail upstream.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported db driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("db dsn is required")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}
	return nil
}

func envTransform(key string) string {
	return envMappings[strings.ToLower(key)]
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
