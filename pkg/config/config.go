package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		setDefaults()

		// Set up environment variable reading for overrides
		viper.SetEnvPrefix("REVLENCE")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		// Load config from fixed location (cleaned for safety)
		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			// A missing config file is fine, defaults and env vars apply
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "5m")
	viper.SetDefault("server.write_timeout", "5m")
	viper.SetDefault("server.shutdown_timeout", "10s")
	viper.SetDefault("server.max_header_bytes", 1<<20)

	// Database (metadata store)
	viper.SetDefault("database.path", "./data/transcribe.db")
	viper.SetDefault("database.log_queries", false)

	// Whisper engine; beam size 5 and temperature 0 stabilize word alignment
	viper.SetDefault("whisper.backend", "local")
	viper.SetDefault("whisper.language", "")
	viper.SetDefault("whisper.word_timestamps", true)
	viper.SetDefault("whisper.beam_size", 5)
	viper.SetDefault("whisper.temperature", 0)
	viper.SetDefault("whisper.vad_filter", false)
	viper.SetDefault("whisper.timeout", "10m")
	viper.SetDefault("whisper.openai_model", "whisper-1")

	// Storage
	viper.SetDefault("storage.bucket", "revlence-transcriptions")
	viper.SetDefault("storage.temp_dir", os.TempDir())
	viper.SetDefault("storage.inline_payload", false)
	viper.SetDefault("storage.max_upload_bytes", 100*1024*1024)

	// Rate limiting
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.requests_per_second", 2)
	viper.SetDefault("rate_limiting.burst", 5)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetString("database.path") == "" {
		fmt.Println("Warning: No database path configured")
	}

	switch backend := viper.GetString("whisper.backend"); backend {
	case "", "local", "openai":
	default:
		return fmt.Errorf("invalid whisper backend: %s", backend)
	}

	if viper.GetString("whisper.backend") == "openai" &&
		viper.GetString("whisper.openai_api_key") == "" &&
		viper.GetString("whisper.openai_base_url") == "" {
		isProduction := viper.GetString("environment") == "production" || viper.GetString("environment") == "prod"
		if isProduction {
			return fmt.Errorf("openai whisper backend requires an API key or base URL")
		}
		fmt.Println("Warning: openai whisper backend has no API key or base URL configured")
	}

	// Auto-correct invalid upload bound
	if viper.GetInt64("storage.max_upload_bytes") <= 0 {
		viper.Set("storage.max_upload_bytes", int64(100*1024*1024))
	}

	// Auto-correct invalid beam size
	if viper.GetInt("whisper.beam_size") < 0 {
		viper.Set("whisper.beam_size", 5)
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Whisper.Backend {
	case "", "local", "openai":
	default:
		return fmt.Errorf("invalid whisper backend: %s", c.Whisper.Backend)
	}

	return nil
}
