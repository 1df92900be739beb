// Package config loads service configuration from the environment and an
// optional YAML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values.
type Config struct {
	// HTTP server
	Port         string `yaml:"port"`
	AllowOrigins string `yaml:"allow_origins"`

	// Record store (Postgres). Empty means static fallback data.
	DatabaseURL string `yaml:"database_url"`

	// Embedding backend
	EmbedProvider  string `yaml:"embed_provider"` // "ollama" or "openai"
	EmbedModel     string `yaml:"embed_model"`
	EmbedDimension int    `yaml:"embed_dimension"`

	// Generation backends, resolved in priority order at startup
	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`
	OpenAIAPIKey string `yaml:"openai_api_key"`
	OpenAIModel  string `yaml:"openai_model"`
	OllamaHost   string `yaml:"ollama_host"`
	OllamaModel  string `yaml:"ollama_model"`

	// Generation limits
	MaxTokens       int           `yaml:"max_tokens"`
	Temperature     float64       `yaml:"temperature"`
	GenerateTimeout time.Duration `yaml:"generate_timeout"`

	// Speech synthesis (empty URL disables voice)
	SpeechURL    string `yaml:"speech_url"`
	SpeechAPIKey string `yaml:"speech_api_key"`
	SpeechVoice  string `yaml:"speech_voice"`
	MaxArtifacts int    `yaml:"max_artifacts"`

	// Logging
	LogFile  string     `yaml:"log_file"`
	LogLevel slog.Level `yaml:"-"`
}

// Load reads configuration from environment variables. Key names match the
// original Python service where one existed (PORT, DATABASE_URL,
// GEMINI_API_KEY, OPENAI_API_KEY).
func Load() Config {
	return Config{
		Port:         getEnv("PORT", "8000"),
		AllowOrigins: getEnv("PORTFOLIO_ALLOW_ORIGINS", "*"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		EmbedProvider:  getEnv("PORTFOLIO_EMBED_PROVIDER", "ollama"),
		EmbedModel:     getEnv("PORTFOLIO_EMBED_MODEL", "all-minilm"),
		EmbedDimension: getEnvInt("PORTFOLIO_EMBED_DIMENSION", 384),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("PORTFOLIO_GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("PORTFOLIO_OPENAI_MODEL", "gpt-4o-mini"),
		OllamaHost:   getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:  getEnv("PORTFOLIO_OLLAMA_MODEL", ""),

		MaxTokens:       getEnvInt("PORTFOLIO_MAX_TOKENS", 300),
		Temperature:     getEnvFloat("PORTFOLIO_TEMPERATURE", 0.7),
		GenerateTimeout: getEnvDuration("PORTFOLIO_GENERATE_TIMEOUT", 20*time.Second),

		SpeechURL:    getEnv("PORTFOLIO_SPEECH_URL", ""),
		SpeechAPIKey: getEnv("PORTFOLIO_SPEECH_API_KEY", ""),
		SpeechVoice:  getEnv("PORTFOLIO_SPEECH_VOICE", "alloy"),
		MaxArtifacts: getEnvInt("PORTFOLIO_MAX_ARTIFACTS", 256),

		LogFile:  getEnv("PORTFOLIO_LOG_FILE", ""),
		LogLevel: parseLogLevel(getEnv("PORTFOLIO_LOG_LEVEL", "INFO")),
	}
}

// LoadFile overlays values from a YAML file onto cfg. Zero-valued fields in
// the file leave the existing value untouched.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	merge(cfg, overlay)
	return nil
}

func merge(dst *Config, src Config) {
	if src.Port != "" {
		dst.Port = src.Port
	}
	if src.AllowOrigins != "" {
		dst.AllowOrigins = src.AllowOrigins
	}
	if src.DatabaseURL != "" {
		dst.DatabaseURL = src.DatabaseURL
	}
	if src.EmbedProvider != "" {
		dst.EmbedProvider = src.EmbedProvider
	}
	if src.EmbedModel != "" {
		dst.EmbedModel = src.EmbedModel
	}
	if src.EmbedDimension != 0 {
		dst.EmbedDimension = src.EmbedDimension
	}
	if src.GeminiAPIKey != "" {
		dst.GeminiAPIKey = src.GeminiAPIKey
	}
	if src.GeminiModel != "" {
		dst.GeminiModel = src.GeminiModel
	}
	if src.OpenAIAPIKey != "" {
		dst.OpenAIAPIKey = src.OpenAIAPIKey
	}
	if src.OpenAIModel != "" {
		dst.OpenAIModel = src.OpenAIModel
	}
	if src.OllamaHost != "" {
		dst.OllamaHost = src.OllamaHost
	}
	if src.OllamaModel != "" {
		dst.OllamaModel = src.OllamaModel
	}
	if src.MaxTokens != 0 {
		dst.MaxTokens = src.MaxTokens
	}
	if src.Temperature != 0 {
		dst.Temperature = src.Temperature
	}
	if src.GenerateTimeout != 0 {
		dst.GenerateTimeout = src.GenerateTimeout
	}
	if src.SpeechURL != "" {
		dst.SpeechURL = src.SpeechURL
	}
	if src.SpeechAPIKey != "" {
		dst.SpeechAPIKey = src.SpeechAPIKey
	}
	if src.SpeechVoice != "" {
		dst.SpeechVoice = src.SpeechVoice
	}
	if src.MaxArtifacts != 0 {
		dst.MaxArtifacts = src.MaxArtifacts
	}
	if src.LogFile != "" {
		dst.LogFile = src.LogFile
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
