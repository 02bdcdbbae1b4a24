package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Generator GeneratorConfig `yaml:"generator"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// GeneratorConfig selects the text service that writes exercise plans.
type GeneratorConfig struct {
	Provider string        `yaml:"provider"` // gemini or openai
	APIKey   string        `yaml:"api_key"`
	Model    string        `yaml:"model"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

type CatalogConfig struct {
	SeedOnStart    bool   `yaml:"seed_on_start"`
	ReseedSchedule string `yaml:"reseed_schedule"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// SlogLevel maps log.level to a slog level. Unknown values mean info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment win over it.
// Env vars use the prefix HEALTHTRACK_ and underscore-separated paths:
//
//	HEALTHTRACK_SERVER_HOST, HEALTHTRACK_SERVER_PORT,
//	HEALTHTRACK_DB_HOST, HEALTHTRACK_DB_PORT, HEALTHTRACK_DB_NAME,
//	HEALTHTRACK_DB_USER, HEALTHTRACK_DB_PASSWORD, HEALTHTRACK_DB_SSLMODE,
//	HEALTHTRACK_AUTH_API_KEY,
//	HEALTHTRACK_TAILSCALE_ENABLED, HEALTHTRACK_TAILSCALE_HOSTNAME,
//	HEALTHTRACK_GENERATOR_PROVIDER, HEALTHTRACK_GENERATOR_API_KEY,
//	HEALTHTRACK_GENERATOR_MODEL, HEALTHTRACK_GENERATOR_BASE_URL,
//	HEALTHTRACK_CATALOG_RESEED_SCHEDULE, HEALTHTRACK_LOG_LEVEL
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HEALTHTRACK_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("HEALTHTRACK_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("HEALTHTRACK_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("HEALTHTRACK_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("HEALTHTRACK_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("HEALTHTRACK_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("HEALTHTRACK_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("HEALTHTRACK_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("HEALTHTRACK_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("HEALTHTRACK_TAILSCALE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = b
		}
	}
	if v := os.Getenv("HEALTHTRACK_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("HEALTHTRACK_GENERATOR_PROVIDER"); v != "" {
		cfg.Generator.Provider = v
	}
	if v := os.Getenv("HEALTHTRACK_GENERATOR_API_KEY"); v != "" {
		cfg.Generator.APIKey = v
	}
	if v := os.Getenv("HEALTHTRACK_GENERATOR_MODEL"); v != "" {
		cfg.Generator.Model = v
	}
	if v := os.Getenv("HEALTHTRACK_GENERATOR_BASE_URL"); v != "" {
		cfg.Generator.BaseURL = v
	}
	if v := os.Getenv("HEALTHTRACK_CATALOG_RESEED_SCHEDULE"); v != "" {
		cfg.Catalog.ReseedSchedule = v
	}
	if v := os.Getenv("HEALTHTRACK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Generator.Provider == "" {
		cfg.Generator.Provider = "gemini"
	}
	if cfg.Generator.Timeout == 0 {
		cfg.Generator.Timeout = 60 * time.Second
	}
	if cfg.Tailscale.Enabled && cfg.Tailscale.Hostname == "" {
		cfg.Tailscale.Hostname = "healthtrack"
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	switch c.Generator.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("generator.provider must be gemini or openai, got %q", c.Generator.Provider)
	}
	if c.Generator.Provider == "openai" && c.Generator.BaseURL == "" {
		return fmt.Errorf("generator.base_url is required for the openai provider")
	}
	return nil
}
