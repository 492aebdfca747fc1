// Package config handles loading and parsing application configuration.
// It supports these sources, in priority order:
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//  3. Neither: every value comes from the environment (or its default).
//
// A .env file in the working directory, when present, is loaded into the
// process environment first. Variables already set are not overwritten.
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"slices"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Environments accepted in Config.Env.
const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

// Storage drivers accepted in Config.Storage.Driver.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// dotenvPath is the file godotenv reads before the environment is parsed.
var dotenvPath = ".env"

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// Every value has an env-default, so an empty environment still yields a
// runnable in-memory server on 0.0.0.0:8000.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	Storage Storage `yaml:"storage"`

	// HTTPServer is embedded (not a pointer) so its fields are accessible
	// directly on Config:  cfg.HTTPServer.Addr  or after promotion cfg.Addr
	HTTPServer `yaml:"http_server"`

	CORS    CORS    `yaml:"cors"`
	Metrics Metrics `yaml:"metrics"`
}

// Storage selects the record store backend.
type Storage struct {
	// Driver is "memory" or "sqlite".
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`

	// Path is the sqlite data source. The schema is recreated on start, so
	// a file path gives no durability across restarts.
	Path string `yaml:"path" env:"STORAGE_PATH" env-default:":memory:"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "0.0.0.0:8000".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"0.0.0.0:8000"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_SERVER_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// CORS lists the origins browsers may call the API from. "*" allows any.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*" env-separator:","`
}

// Metrics controls the Prometheus endpoint. It is served unless Disabled;
// cleanenv fills defaults into zero values, so the switch is phrased as an
// opt-out.
type Metrics struct {
	Disabled bool   `yaml:"disabled" env:"METRICS_DISABLED"`
	Path     string `yaml:"path" env:"METRICS_PATH" env-default:"/metrics"`
}

// Load reads the config file at path (or only the environment when path
// is empty) and checks the enumerated values.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", dotenvPath, err)
	}

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read environment: %w", err)
		}
	} else {
		// Verify the file exists before trying to read it, for a clearer
		// message than cleanenv's.
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		// cleanenv.ReadConfig reads the YAML file, then overlays env:"..."
		// tagged fields from the environment and fills env-default values.
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if !slices.Contains([]string{EnvDev, EnvStaging, EnvProd}, c.Env) {
		return fmt.Errorf("invalid env %q: want dev, staging or prod", c.Env)
	}
	if !slices.Contains([]string{DriverMemory, DriverSQLite}, c.Storage.Driver) {
		return fmt.Errorf("invalid storage driver %q: want memory or sqlite", c.Storage.Driver)
	}
	if !c.Metrics.Disabled && c.Metrics.Path == "" {
		return errors.New("metrics path must not be empty unless metrics are disabled")
	}
	return nil
}

// MustLoad resolves the config path, loads it, and returns the config.
//
// The name "MustLoad" follows a Go convention: functions prefixed with
// "Must" are allowed to panic/fatal on failure. Callers do not need to
// check a returned error: if this function returns, the config is valid.
func MustLoad() *Config {
	// ── Source 1: environment variable ───────────────────────────────
	configPath := os.Getenv("CONFIG_PATH")

	// ── Source 2: command-line flag ───────────────────────────────────
	//   go run ./cmd/campus-api --config=config/local.yaml
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	// ── Source 3: environment only ───────────────────────────────────
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %s", err.Error())
	}
	return cfg
}
