package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFile = "marsloop.yaml"

	defaultDBPath       = "./dev.db"
	defaultPort         = "8080"
	defaultAppEnv       = "dev"
	defaultSolarURL     = "https://power.larc.nasa.gov/api/temporal/daily/point"
	defaultFetchTimeout = 5 * time.Second
	defaultLogLevel     = "info"
)

// Config holds application configuration sourced from an optional YAML file
// and environment variables. Environment variables win.
type Config struct {
	AdminEmail      string        `yaml:"admin_email"`
	AdminPassword   string        `yaml:"admin_password"`
	SessionSecret   string        `yaml:"session_secret"`
	DBPath          string        `yaml:"db_path"`
	Port            string        `yaml:"port"`
	AppEnv          string        `yaml:"app_env"`
	RegolithDataDir string        `yaml:"regolith_data_dir"`
	SolarAPIURL     string        `yaml:"solar_api_url"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`
	LogLevel        string        `yaml:"log_level"`
}

// IsDev reports whether the app runs in a development environment.
func (c Config) IsDev() bool {
	env := strings.ToLower(strings.TrimSpace(c.AppEnv))
	return env == "" || env == "dev" || env == "development" || env == "local"
}

// Load reads the YAML file at path (missing files are ignored), applies
// environment overrides and fills defaults. An empty path means DefaultFile.
func Load(path string, logger *zap.Logger) (Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		path = DefaultFile
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	overrideString(&cfg.AdminEmail, "ADMIN_EMAIL")
	overrideString(&cfg.AdminPassword, "ADMIN_PASSWORD")
	overrideString(&cfg.SessionSecret, "SESSION_SECRET")
	overrideString(&cfg.DBPath, "DB_PATH")
	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.AppEnv, "APP_ENV")
	overrideString(&cfg.RegolithDataDir, "REGOLITH_DATA_DIR")
	overrideString(&cfg.SolarAPIURL, "SOLAR_API_URL")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse FETCH_TIMEOUT: %w", err)
		}
		cfg.FetchTimeout = d
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = defaultAppEnv
	}
	if cfg.SolarAPIURL == "" {
		cfg.SolarAPIURL = defaultSolarURL
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	if cfg.AdminEmail == "" {
		logger.Warn("ADMIN_EMAIL is not set")
	}
	if cfg.AdminPassword == "" {
		logger.Warn("ADMIN_PASSWORD is not set")
	}
	if cfg.SessionSecret == "" {
		logger.Warn("SESSION_SECRET is not set")
	}

	return cfg, nil
}

func overrideString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
