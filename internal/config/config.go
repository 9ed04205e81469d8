package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/igorxl1/leaguepull/internal/platform/logging"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Config stores runtime configuration for the CLI. Every field maps to
// a LEAGUEPULL_* environment variable so runs stay reproducible
// without flags.
type Config struct {
	AppEnv          string        `validate:"oneof=dev prod"`
	APIBaseURL      string        `validate:"required,url"`
	HTTPTimeout     time.Duration `validate:"gt=0"`
	MaxRetries      int           `validate:"gte=0,lte=10"`
	BackoffBase     time.Duration `validate:"gt=0"`
	RotationDelay   time.Duration `validate:"gte=0"`
	OutputDir       string        `validate:"required"`
	FallbackEnabled bool
	LogJSON         bool
	LogLevel        logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("LEAGUEPULL_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	httpTimeout, err := time.ParseDuration(getEnv("LEAGUEPULL_HTTP_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUEPULL_HTTP_TIMEOUT: %w", err)
	}
	maxRetries, err := getEnvAsInt("LEAGUEPULL_MAX_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUEPULL_MAX_RETRIES: %w", err)
	}
	backoffBase, err := time.ParseDuration(getEnv("LEAGUEPULL_BACKOFF_BASE", "600ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUEPULL_BACKOFF_BASE: %w", err)
	}
	rotationDelay, err := time.ParseDuration(getEnv("LEAGUEPULL_ROTATION_DELAY", "600ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUEPULL_ROTATION_DELAY: %w", err)
	}
	fallbackEnabled, err := strconv.ParseBool(getEnv("LEAGUEPULL_FALLBACK_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUEPULL_FALLBACK_ENABLED: %w", err)
	}

	logJSONDefault := "false"
	if appEnv == EnvProd {
		logJSONDefault = "true"
	}
	logJSON, err := strconv.ParseBool(getEnv("LEAGUEPULL_LOG_JSON", logJSONDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUEPULL_LOG_JSON: %w", err)
	}

	cfg := Config{
		AppEnv:          appEnv,
		APIBaseURL:      strings.TrimRight(getEnv("LEAGUEPULL_API_BASE_URL", "https://api.sofascore.com/api/v1"), "/"),
		HTTPTimeout:     httpTimeout,
		MaxRetries:      maxRetries,
		BackoffBase:     backoffBase,
		RotationDelay:   rotationDelay,
		OutputDir:       getEnv("LEAGUEPULL_OUTPUT_DIR", "."),
		FallbackEnabled: fallbackEnabled,
		LogJSON:         logJSON,
		LogLevel:        parseLogLevel(getEnv("LEAGUEPULL_LOG_LEVEL", "info")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case EnvDev:
		return EnvDev, nil
	case EnvProd:
		return EnvProd, nil
	default:
		return "", fmt.Errorf("invalid LEAGUEPULL_ENV %q, expected %q or %q", v, EnvDev, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}
