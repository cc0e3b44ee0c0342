package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIBaseURL       = "https://en.wikipedia.org/w/api.php"
	defaultAddr             = ":8080"
	defaultLikeStore        = "memory"
	defaultDBPath           = "wikiscroll.db"
	defaultUpstreamInterval = 100 * time.Millisecond
	defaultSettle           = 300 * time.Millisecond
	defaultCellHeight       = 16
	defaultLogLevel         = "info"
	defaultLogFile          = "wikiscroll.log"
)

// Config holds runtime settings for both the server and the terminal feed.
type Config struct {
	APIBaseURL       string
	Addr             string
	ServerURL        string
	LikeStore        string
	DBPath           string
	UpstreamInterval time.Duration
	Settle           time.Duration
	CellHeight       int
	LogLevel         string
	LogFile          string
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return LoadFromEnv()
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		APIBaseURL: os.Getenv("WIKISCROLL_API_BASE_URL"),
		Addr:       os.Getenv("WIKISCROLL_ADDR"),
		ServerURL:  strings.TrimRight(os.Getenv("WIKISCROLL_SERVER_URL"), "/"),
		LikeStore:  os.Getenv("WIKISCROLL_LIKE_STORE"),
		DBPath:     os.Getenv("WIKISCROLL_DB_PATH"),
		LogLevel:   os.Getenv("WIKISCROLL_LOG_LEVEL"),
		LogFile:    os.Getenv("WIKISCROLL_LOG_FILE"),
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.LikeStore == "" {
		cfg.LikeStore = defaultLikeStore
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile
	}

	var err error
	if cfg.UpstreamInterval, err = durationFromEnv("WIKISCROLL_UPSTREAM_INTERVAL", defaultUpstreamInterval); err != nil {
		return Config{}, err
	}
	if cfg.Settle, err = durationFromEnv("WIKISCROLL_SETTLE", defaultSettle); err != nil {
		return Config{}, err
	}
	if cfg.CellHeight, err = intFromEnv("WIKISCROLL_CELL_HEIGHT", defaultCellHeight); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("APIBaseURL is required")
	}
	if c.APIBaseURL[len(c.APIBaseURL)-1] == '/' {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	if c.LikeStore != "memory" && c.LikeStore != "sqlite" {
		return fmt.Errorf("LikeStore must be memory or sqlite: %s", c.LikeStore)
	}
	if c.LikeStore == "sqlite" && c.DBPath == "" {
		return errors.New("DBPath is required for the sqlite like store")
	}
	if c.UpstreamInterval < 0 {
		return fmt.Errorf("UpstreamInterval must not be negative: %s", c.UpstreamInterval)
	}
	if c.Settle <= 0 {
		return fmt.Errorf("Settle must be positive: %s", c.Settle)
	}
	if c.CellHeight < 1 {
		return fmt.Errorf("CellHeight must be positive: %d", c.CellHeight)
	}
	return nil
}

// Remote reports whether the terminal feed should acquire items from a
// running server instead of in-process.
func (c Config) Remote() bool {
	return c.ServerURL != ""
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
