package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	pstrings "distributors/pkg/platform/strings"
)

// Config is the full server configuration.
type Config struct {
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	Log      Log      `yaml:"log"`
	CORS     CORS     `yaml:"cors"`
	// Seed loads development reference data on startup.
	Seed bool `yaml:"seed"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// Database selects the entity store backend.
type Database struct {
	// Driver is one of memory, sqlite, postgres (lib/pq) or pgx.
	Driver       string `yaml:"driver"`
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// CORS lists the browser origins allowed to call the API.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the development configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:              ":8000",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Database: Database{Driver: "memory"},
		Log:      Log{Level: "info", Format: "json"},
		CORS: CORS{AllowedOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		}},
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// DISTRIBUTORS_CONFIG (if any), then environment overrides. A .env file in
// the working directory is read first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("DISTRIBUTORS_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("DISTRIBUTORS_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := getenv("DISTRIBUTORS_DB_DRIVER"); v != "" {
		c.Database.Driver = strings.ToLower(v)
	}
	if v := getenv("DISTRIBUTORS_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := getenv("DISTRIBUTORS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("DISTRIBUTORS_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := getenv("DISTRIBUTORS_CORS_ORIGINS"); v != "" {
		c.CORS.AllowedOrigins = pstrings.SplitList(v)
	}
	if v := getenv("DISTRIBUTORS_SEED"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DISTRIBUTORS_SEED: %w", err)
		}
		c.Seed = seed
	}
	return nil
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "memory", "sqlite":
	case "postgres", "pgx":
		if c.Database.DSN == "" {
			return fmt.Errorf("database dsn is required for driver %s", c.Database.Driver)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr is required")
	}
	return nil
}
