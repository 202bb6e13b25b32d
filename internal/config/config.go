package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/i474232898/climatrack/internal/weather"
)

var validate = validator.New()

type AppConfig struct {
	Port string `validate:"required,numeric"`

	LogLevel  string `validate:"oneof=debug info warn warning error"`
	LogFormat string `validate:"oneof=text json"`

	// HTTPTimeout bounds outbound fetches of remote CSV sources.
	HTTPTimeout time.Duration `validate:"gt=0"`

	// RefreshInterval controls how often configured sources are reloaded.
	RefreshInterval time.Duration `validate:"gte=0"`

	// Sources are file paths or http(s) URLs loaded at startup and on refresh.
	Sources []string

	// In-memory store retention.
	StoreMaxDatasets int           `validate:"gte=0"` // max number of datasets kept (0 = unlimited)
	StoreMaxAge      time.Duration `validate:"gte=0"` // max age of datasets (0 = unlimited)

	// MaxUploadBytes bounds uploaded and fetched CSV bodies.
	MaxUploadBytes int64 `validate:"gt=0"`

	// RulesFile optionally points at a YAML file of prediction thresholds.
	RulesFile string
	Rules     weather.Rules
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug("no .env file loaded")
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.LogLevel = strings.ToLower(getenvDefault("LOG_LEVEL", "info"))
	cfg.LogFormat = strings.ToLower(getenvDefault("LOG_FORMAT", "text"))

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}

	if cfg.StoreMaxDatasets, err = getenvInt("STORE_MAX_DATASETS", 32); err != nil {
		return nil, err
	}
	maxUpload, err := getenvInt("MAX_UPLOAD_BYTES", 10<<20)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadBytes = int64(maxUpload)
	cfg.Sources = splitList(os.Getenv("WEATHER_SOURCES"))

	cfg.RulesFile = os.Getenv("PREDICTION_RULES_FILE")
	cfg.Rules = weather.DefaultRules()
	if cfg.RulesFile != "" {
		rules, err := LoadRules(cfg.RulesFile)
		if err != nil {
			return nil, err
		}
		cfg.Rules = rules
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadRules reads prediction thresholds from a YAML file. Keys left out of
// the file keep their default value; unknown keys are an error.
func LoadRules(path string) (weather.Rules, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return weather.Rules{}, fmt.Errorf("could not read rules '%s': %w", path, err)
	}
	return ParseRules(content)
}

// ParseRules decodes YAML prediction thresholds over the defaults.
func ParseRules(content []byte) (weather.Rules, error) {
	rules := weather.DefaultRules()
	if err := yaml.UnmarshalStrict(content, &rules); err != nil {
		return weather.Rules{}, fmt.Errorf("invalid rules: %w", err)
	}
	if err := validate.Struct(rules); err != nil {
		return weather.Rules{}, fmt.Errorf("invalid rules: %w", err)
	}
	return rules, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
