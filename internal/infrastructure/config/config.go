package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	BaseURL  string `envconfig:"BASE_URL"` // used for og:url; request host when empty

	GamesFile   string `envconfig:"GAMES_FILE"` // YAML; built-in table when empty
	WatchGames  bool   `envconfig:"WATCH_GAMES" default:"false"`
	DefaultGame string `envconfig:"DEFAULT_GAME"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`  // debug|info|warn|error
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"` // json|console

	// base64, or a path to a file holding base64 (k8s secret mounts)
	CookieHashKeyRaw  string `envconfig:"COOKIE_HASH_KEY"`
	CookieBlockKeyRaw string `envconfig:"COOKIE_BLOCK_KEY"`
	CookieHashKey     []byte `ignored:"true"`
	CookieBlockKey    []byte `ignored:"true"`

	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"0"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"20"`

	CrawlerPattern string `envconfig:"CRAWLER_PATTERN"`

	DevMode bool `envconfig:"DEV_MODE" default:"false"`
}

// FromEnv reads .env (if present) and then the process environment.
func FromEnv() (Config, error) {
	var cfg Config
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("config: .env: %w", err)
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := cfg.decodeKeys(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) decodeKeys() error {
	if c.CookieHashKeyRaw == "" {
		if c.CookieBlockKeyRaw != "" {
			return fmt.Errorf("COOKIE_BLOCK_KEY needs COOKIE_HASH_KEY")
		}
		return nil
	}
	var err error
	c.CookieHashKey, err = decodeB64(c.CookieHashKeyRaw)
	if err != nil {
		return fmt.Errorf("COOKIE_HASH_KEY: %w", err)
	}
	// no block key: cookies are signed but not encrypted
	if c.CookieBlockKeyRaw == "" {
		return nil
	}
	c.CookieBlockKey, err = decodeB64(c.CookieBlockKeyRaw)
	if err != nil {
		return fmt.Errorf("COOKIE_BLOCK_KEY: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console (got %q)", c.LogFormat)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 1 when rate limiting is on")
	}
	if c.CookieHashKey != nil && len(c.CookieHashKey) < 32 {
		return fmt.Errorf("COOKIE_HASH_KEY must decode to at least 32 bytes (got %d)", len(c.CookieHashKey))
	}
	switch len(c.CookieBlockKey) {
	case 0, 16, 24, 32:
	default:
		return fmt.Errorf("COOKIE_BLOCK_KEY must decode to 16, 24 or 32 bytes (got %d)", len(c.CookieBlockKey))
	}
	if c.WatchGames && c.GamesFile == "" {
		return fmt.Errorf("WATCH_GAMES needs GAMES_FILE")
	}
	return nil
}

// CookiesEnabled reports whether the preferred-game cookie can be signed.
func (c Config) CookiesEnabled() bool {
	return len(c.CookieHashKey) > 0
}

func decodeB64(s string) ([]byte, error) {
	if b, err := os.ReadFile(s); err == nil {
		s = string(b)
	}
	s = strings.TrimSpace(s)
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
