package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting. It is constructed once in main and
// passed to constructors explicitly; there is no process-wide instance.
type Config struct {
	APIKey            string
	Model             string
	Host              string
	OverlayOpacity    float64
	AutoProcess       bool
	PollInterval      time.Duration
	MinTextLength     int
	PromptsDir        string
	Hotkey            string
	EnableFileLogging bool
}

const (
	DefaultModel        = "llama-3.3-70b-versatile"
	DefaultHost         = "https://api.groq.com/openai"
	DefaultOpacity      = 0.9
	DefaultPollInterval = 500 * time.Millisecond
	DefaultHotkey       = "Ctrl+Alt+X"
)

// Load reads settings from the environment, first applying a .env file
// found in the current directory or next to the executable.
func Load() (*Config, error) {
	envPaths := []string{".env"}
	if execPath, err := os.Executable(); err == nil {
		envPaths = append(envPaths, filepath.Join(filepath.Dir(execPath), ".env"))
	}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			break
		}
	}

	cfg := &Config{
		APIKey:            os.Getenv("GROQ_API_KEY"),
		Model:             getEnvWithDefault("LLAMA_MODEL", DefaultModel),
		Host:              strings.TrimRight(getEnvWithDefault("LLAMA_HOST", DefaultHost), "/"),
		OverlayOpacity:    getEnvFloat("OVERLAY_OPACITY", DefaultOpacity),
		AutoProcess:       getEnvBool("AUTO_PROCESS", true),
		PollInterval:      getEnvMillis("POLL_INTERVAL_MS", DefaultPollInterval),
		MinTextLength:     getEnvInt("MIN_TEXT_LENGTH", 1),
		PromptsDir:        getEnvWithDefault("PROMPTS_DIR", "prompts"),
		Hotkey:            getEnvWithDefault("HOTKEY", DefaultHotkey),
		EnableFileLogging: strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
	}

	return cfg, nil
}

// Validate checks settings and returns human-readable warnings for the
// ones that are out of range. Warnings never abort startup; the offending
// value is replaced with its default instead.
func (c *Config) Validate() []string {
	var warnings []string

	if c.OverlayOpacity < 0.0 || c.OverlayOpacity > 1.0 {
		warnings = append(warnings, fmt.Sprintf("OVERLAY_OPACITY must be between 0.0 and 1.0, got %v; using %v", c.OverlayOpacity, DefaultOpacity))
		c.OverlayOpacity = DefaultOpacity
	}
	if c.PollInterval <= 0 {
		warnings = append(warnings, fmt.Sprintf("POLL_INTERVAL_MS must be positive, got %v; using %v", c.PollInterval, DefaultPollInterval))
		c.PollInterval = DefaultPollInterval
	}
	if c.MinTextLength < 1 {
		warnings = append(warnings, fmt.Sprintf("MIN_TEXT_LENGTH must be at least 1, got %d; using 1", c.MinTextLength))
		c.MinTextLength = 1
	}

	return warnings
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	switch value {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvMillis(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return time.Duration(n) * time.Millisecond
		}
	}
	return defaultValue
}
