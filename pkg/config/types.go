package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string          `mapstructure:"environment"`
	Server       ServerConfig    `mapstructure:"server"`
	Database     DatabaseConfig  `mapstructure:"database"`
	Whisper      WhisperConfig   `mapstructure:"whisper"`
	Storage      StorageConfig   `mapstructure:"storage"`
	RateLimiting RateLimitConfig `mapstructure:"rate_limiting"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains metadata store settings
type DatabaseConfig struct {
	Path       string `mapstructure:"path"`
	LogQueries bool   `mapstructure:"log_queries"`
}

// WhisperConfig contains speech recognition engine settings
type WhisperConfig struct {
	Backend        string        `mapstructure:"backend"` // local or openai
	WhisperPath    string        `mapstructure:"whisper_path"`
	ModelPath      string        `mapstructure:"model_path"`
	Language       string        `mapstructure:"language"`
	WordTimestamps bool          `mapstructure:"word_timestamps"`
	BeamSize       int           `mapstructure:"beam_size"`
	Temperature    float32       `mapstructure:"temperature"`
	VADFilter      bool          `mapstructure:"vad_filter"`
	Timeout        time.Duration `mapstructure:"timeout"`
	OpenAIAPIKey   string        `mapstructure:"openai_api_key"`
	OpenAIBaseURL  string        `mapstructure:"openai_base_url"`
	OpenAIModel    string        `mapstructure:"openai_model"`
}

// StorageConfig contains object store and upload settings
type StorageConfig struct {
	SupabaseURL    string `mapstructure:"supabase_url"`
	SupabaseKey    string `mapstructure:"supabase_key"`
	Bucket         string `mapstructure:"bucket"`
	TempDir        string `mapstructure:"temp_dir"`
	InlinePayload  bool   `mapstructure:"inline_payload"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
}

// RateLimitConfig contains per-client rate limit settings
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerSecond int  `mapstructure:"requests_per_second"`
	Burst             int  `mapstructure:"burst"`
}
