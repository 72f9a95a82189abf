// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values
// Validate config

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"agri-updates/internal/generator"
)

const DefaultPath = "configs/config.yaml"

type Database struct {
	Driver string `yaml:"driver"`
	URL    string `yaml:"url"`
}

type Telegram struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

type LLM struct {
	Provider       string `yaml:"provider"`
	Model          string `yaml:"model"`
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout is the per-request polish timeout.
func (l LLM) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

type Config struct {
	Port          string `yaml:"port"`
	Mode          string `yaml:"mode"`
	SiteURL       string `yaml:"site_url"`
	WebhookSecret string `yaml:"webhook_secret"`

	// CORS origins allowed to call the API, e.g. the admin UI
	AllowedOrigins []string `yaml:"allowed_origins"`

	Database  Database `yaml:"database"`
	RedisURL  string   `yaml:"redis_url"`
	CachePath string   `yaml:"cache_path"`

	Telegram Telegram `yaml:"telegram"`
	LLM      LLM      `yaml:"llm"`

	// Extra markers merged into the built-in genericness set
	GenericMarkers generator.GenericMarkers `yaml:"generic_markers"`
	DigestSchedule string                   `yaml:"digest_schedule"`
}

// Load reads .env, then the YAML file at path (missing file is not an
// error), then environment overrides, and fills defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		log.Printf("Warning: Could not read %s: %v", path, err)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"PORT":               &cfg.Port,
		"GIN_MODE":           &cfg.Mode,
		"SITE_URL":           &cfg.SiteURL,
		"WEBHOOK_SECRET":     &cfg.WebhookSecret,
		"DATABASE_DRIVER":    &cfg.Database.Driver,
		"DATABASE_URL":       &cfg.Database.URL,
		"REDIS_URL":          &cfg.RedisURL,
		"CACHE_PATH":         &cfg.CachePath,
		"TELEGRAM_BOT_TOKEN": &cfg.Telegram.Token,
		"LLM_PROVIDER":       &cfg.LLM.Provider,
		"LLM_MODEL":          &cfg.LLM.Model,
		"LLM_API_KEY":        &cfg.LLM.APIKey,
		"LLM_BASE_URL":       &cfg.LLM.BaseURL,
		"DIGEST_SCHEDULE":    &cfg.DigestSchedule,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.Telegram.ChatID = id
	}
	if secs := os.Getenv("LLM_TIMEOUT_SECONDS"); secs != "" {
		n, err := strconv.Atoi(secs)
		if err != nil {
			return fmt.Errorf("invalid LLM_TIMEOUT_SECONDS: %w", err)
		}
		cfg.LLM.TimeoutSeconds = n
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Mode == "" {
		cfg.Mode = "debug"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.URL == "" && cfg.Database.Driver == "sqlite" {
		cfg.Database.URL = "agri-updates.db"
	}
	if cfg.CachePath == "" {
		cfg.CachePath = ".cache"
	}
	if cfg.LLM.TimeoutSeconds == 0 {
		cfg.LLM.TimeoutSeconds = 30
	}
	if cfg.DigestSchedule == "" {
		cfg.DigestSchedule = "0 9 * * *"
	}
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
}

// Validate checks settings shared by the service and the CLI.
func (c *Config) Validate() error {
	switch c.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unsupported mode %q", c.Mode)
	}
	switch strings.ToLower(c.Database.Driver) {
	case "postgres", "postgresql", "pgx":
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	case "sqlite", "sqlite3":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.LLM.Provider {
	case "", "groq", "openai":
	default:
		return fmt.Errorf("unsupported llm provider %q", c.LLM.Provider)
	}
	if c.LLM.TimeoutSeconds < 0 {
		return errors.New("llm.timeout_seconds must not be negative")
	}
	if (c.Telegram.Token == "") != (c.Telegram.ChatID == 0) {
		return errors.New("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}
	return nil
}

// ValidateServer adds the checks only the HTTP service needs.
func (c *Config) ValidateServer() error {
	if c.WebhookSecret == "" {
		return errors.New("WEBHOOK_SECRET is required")
	}
	return nil
}

// PostURL is the public address a draft will have once published.
func (c *Config) PostURL(slug string) string {
	return c.SiteURL + "/posts/" + slug
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
