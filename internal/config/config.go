// Package config loads preview-server and renderer configuration from
// environment variables with defaults and command-line overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// globalConfig stores the configuration loaded with command-line overrides
// so other packages can see the same values the server was started with.
var (
	globalConfig *Config
	configMutex  sync.Mutex
)

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Renderer RendererConfig `json:"renderer"`
	Logging  LoggingConfig  `json:"logging"`
}

// LoadOptions holds command-line override options
type LoadOptions struct {
	Host     string
	Port     string
	LogLevel string
	DataDir  string
}

// ServerConfig holds HTTP/websocket server configuration
type ServerConfig struct {
	Host         string        `json:"host" env:"SERVER_HOST" default:"0.0.0.0"`
	Port         string        `json:"port" env:"SERVER_PORT" default:"8080"`
	ReadTimeout  time.Duration `json:"readTimeout" env:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `json:"writeTimeout" env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `json:"idleTimeout" env:"SERVER_IDLE_TIMEOUT" default:"120s"`
}

// RendererConfig holds the render-core configuration
type RendererConfig struct {
	DefaultWidth  int     `json:"defaultWidth" env:"RENDER_DEFAULT_WIDTH" default:"640"`
	DefaultHeight int     `json:"defaultHeight" env:"RENDER_DEFAULT_HEIGHT" default:"480"`
	MaxWidth      int     `json:"maxWidth" env:"RENDER_MAX_WIDTH" default:"2560"`
	MaxHeight     int     `json:"maxHeight" env:"RENDER_MAX_HEIGHT" default:"1600"`
	TickRate      int     `json:"tickRate" env:"RENDER_TICK_RATE" default:"24"`
	DefaultZoom   float64 `json:"defaultZoom" env:"RENDER_DEFAULT_ZOOM" default:"1.0"`
	DataDir       string  `json:"dataDir" env:"RENDER_DATA_DIR" default:""`
	Tileset       int     `json:"tileset" env:"RENDER_TILESET" default:"0"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `json:"level" env:"LOG_LEVEL" default:"info"`
}

// Load loads configuration from environment variables with defaults
func Load() (*Config, error) {
	return LoadWithOverrides(LoadOptions{})
}

// LoadWithOverrides loads configuration with command-line overrides
func LoadWithOverrides(opts LoadOptions) (*Config, error) {
	config := &Config{}

	// Server config
	config.Server.Host = getOverrideOrEnv(opts.Host, "SERVER_HOST", "0.0.0.0")
	config.Server.Port = getOverrideOrEnv(opts.Port, "SERVER_PORT", "8080")
	config.Server.ReadTimeout = getDurationWithDefault("SERVER_READ_TIMEOUT", 30*time.Second)
	config.Server.WriteTimeout = getDurationWithDefault("SERVER_WRITE_TIMEOUT", 30*time.Second)
	config.Server.IdleTimeout = getDurationWithDefault("SERVER_IDLE_TIMEOUT", 120*time.Second)

	// Renderer config
	config.Renderer.DefaultWidth = getIntWithDefault("RENDER_DEFAULT_WIDTH", 640)
	config.Renderer.DefaultHeight = getIntWithDefault("RENDER_DEFAULT_HEIGHT", 480)
	config.Renderer.MaxWidth = getIntWithDefault("RENDER_MAX_WIDTH", 2560)
	config.Renderer.MaxHeight = getIntWithDefault("RENDER_MAX_HEIGHT", 1600)
	config.Renderer.TickRate = getIntWithDefault("RENDER_TICK_RATE", 24)
	config.Renderer.DefaultZoom = getFloatWithDefault("RENDER_DEFAULT_ZOOM", 1.0)
	config.Renderer.DataDir = getOverrideOrEnv(opts.DataDir, "RENDER_DATA_DIR", "")
	config.Renderer.Tileset = getIntWithDefault("RENDER_TILESET", 0)

	// Logging config
	config.Logging.Level = getOverrideOrEnv(opts.LogLevel, "LOG_LEVEL", "info")

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	configMutex.Lock()
	globalConfig = config
	configMutex.Unlock()

	return config, nil
}

// GetGlobalConfig returns the globally stored configuration
func GetGlobalConfig() *Config {
	configMutex.Lock()
	defer configMutex.Unlock()
	return globalConfig
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port: %s", c.Server.Port)
	}

	if c.Renderer.DefaultWidth <= 0 || c.Renderer.DefaultHeight <= 0 {
		return fmt.Errorf("default dimensions must be positive")
	}

	if c.Renderer.MaxWidth < c.Renderer.DefaultWidth || c.Renderer.MaxHeight < c.Renderer.DefaultHeight {
		return fmt.Errorf("max dimensions must be >= default dimensions")
	}

	if c.Renderer.TickRate < 1 || c.Renderer.TickRate > 240 {
		return fmt.Errorf("tick rate must be in [1, 240]: %d", c.Renderer.TickRate)
	}

	if c.Renderer.DefaultZoom <= 0 {
		return fmt.Errorf("default zoom must be positive")
	}

	if c.Renderer.Tileset < 0 || c.Renderer.Tileset > 7 {
		return fmt.Errorf("tileset index must be in [0, 7]: %d", c.Renderer.Tileset)
	}

	if c.Renderer.DataDir != "" {
		if info, err := os.Stat(c.Renderer.DataDir); err != nil || !info.IsDir() {
			return fmt.Errorf("data dir is not a readable directory: %s", c.Renderer.DataDir)
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

// Helper functions for environment variable parsing

func getOverrideOrEnv(override, key, defaultValue string) string {
	if strings.TrimSpace(override) != "" {
		return strings.TrimSpace(override)
	}
	return getEnvWithDefault(key, defaultValue)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
