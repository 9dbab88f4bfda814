package utils

import (
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full service configuration loaded from YAML.
type Config struct {
	Server struct {
		Host    string `yaml:"host"`
		Port    string `yaml:"port"`
		Prefork bool   `yaml:"prefork"`
	} `yaml:"server"`

	Logger struct {
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Compress   bool   `yaml:"compress"`
		Level      string `yaml:"level"`
	} `yaml:"logger"`

	Cache struct {
		RedisHost         string        `yaml:"redis_host"`
		ImageCacheDB      int           `yaml:"image_cache_db"`
		ImageCacheEnabled bool          `yaml:"image_cache_enabled"`
		ImageCacheTTL     time.Duration `yaml:"image_cache_ttl"`
		RateLimitDB       int           `yaml:"rate_limit_db"`
	} `yaml:"cache"`

	RateLimiter struct {
		Interval          time.Duration `yaml:"interval"`
		UserLimit         int           `yaml:"user_limit"`
		EnableUserLimiter bool          `yaml:"enable_user_limiter"`
	} `yaml:"rate_limiter"`

	Limits struct {
		MaxTextBytes int `yaml:"max_text_bytes"`
	} `yaml:"limits"`

	Render struct {
		DPI         int `yaml:"dpi"`
		JPEGQuality int `yaml:"jpeg_quality"`
	} `yaml:"render"`
}

// AppConfig is the process-wide configuration. It is written once by
// LoadConfig during startup and treated as read-only afterwards.
var AppConfig Config

var configMu sync.RWMutex

func defaultConfig() Config {
	var cfg Config
	cfg.Server.Port = ":5000"
	cfg.Logger.Level = "info"
	cfg.Logger.MaxSizeMB = 50
	cfg.Logger.MaxBackups = 3
	cfg.Logger.MaxAgeDays = 14
	cfg.Cache.RedisHost = "localhost:6379"
	cfg.Cache.ImageCacheTTL = 24 * time.Hour
	cfg.RateLimiter.Interval = time.Minute
	cfg.Limits.MaxTextBytes = 8192
	cfg.Render.DPI = 300
	cfg.Render.JPEGQuality = 95
	return cfg
}

// LoadConfig reads the YAML config file and stores the result in AppConfig.
// The path defaults to ./config.yaml and can be overridden with CONFIG_PATH.
// A missing file is not an error; defaults are used instead.
func LoadConfig() Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	cfg := defaultConfig()
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			panic("invalid config file " + path + ": " + err.Error())
		}
	}

	if cfg.Render.DPI <= 0 {
		cfg.Render.DPI = 300
	}
	if cfg.Render.JPEGQuality <= 0 || cfg.Render.JPEGQuality > 100 {
		cfg.Render.JPEGQuality = 95
	}
	if cfg.Limits.MaxTextBytes <= 0 {
		cfg.Limits.MaxTextBytes = 8192
	}

	configMu.Lock()
	AppConfig = cfg
	configMu.Unlock()
	return cfg
}

// GetConfig returns the current global configuration.
func GetConfig() Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return AppConfig
}
