package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. MODELCATALOG_HTTP_PORT.
const EnvPrefix = "MODELCATALOG_"

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverValkey   = "valkey"
)

// Config holds the modelcatalog API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http" envPrefix:"HTTP_"`
	Database DatabaseConfig `yaml:"database" envPrefix:"DATABASE_"`
	Auth     AuthConfig     `yaml:"auth" envPrefix:"AUTH_"`
	Matching MatchingConfig `yaml:"matching" envPrefix:"MATCHING_"`
	Logging  LoggingConfig  `yaml:"logging" envPrefix:"LOGGING_"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" env:"LEVEL"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys" env:"API_KEYS" envSeparator:","`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port" env:"PORT"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec" env:"READ_TIMEOUT_SEC"`
	WriteTimeoutSec int `yaml:"write_timeout_sec" env:"WRITE_TIMEOUT_SEC"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec" env:"SHUTDOWN_TIMEOUT_SEC"`
}

// DatabaseConfig holds catalog store connection settings.
// SQL drivers use DSN/Replicas, valkey uses Addrs/Password/KeyPrefix.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver" env:"DRIVER"` // sqlite, postgres, mysql, valkey (default: sqlite)
	DSN              string   `yaml:"dsn" env:"DSN"`
	Replicas         []string `yaml:"replicas" env:"REPLICAS" envSeparator:","`
	MaxOpenConns     int      `yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns     int      `yaml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	AutoMigrate      bool     `yaml:"auto_migrate" env:"AUTO_MIGRATE"`
	Addrs            []string `yaml:"addrs" env:"ADDRS" envSeparator:","`
	Password         string   `yaml:"password" env:"PASSWORD"`
	KeyPrefix        string   `yaml:"key_prefix" env:"KEY_PREFIX"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec" env:"READINESS_TIMEOUT_SEC"`
}

// IsSQL reports whether the driver is served by gorm.
func (d DatabaseConfig) IsSQL() bool {
	switch d.Driver {
	case DriverSQLite, DriverPostgres, DriverMySQL:
		return true
	}
	return false
}

// MatchingConfig holds ranking defaults.
type MatchingConfig struct {
	DefaultCostWeight *float64 `yaml:"default_cost_weight" env:"DEFAULT_COST_WEIGHT"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod)
// and applies MODELCATALOG_* environment overrides on top.
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes raw YAML, applies environment overrides, defaults and validation.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns <= 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.KeyPrefix == "" {
		c.Database.KeyPrefix = "modelcatalog:"
	}
	if c.Matching.DefaultCostWeight == nil {
		w := 0.5
		c.Matching.DefaultCostWeight = &w
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres, DriverMySQL:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for driver %q", c.Database.Driver)
		}
	case DriverValkey:
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required")
		}
	default:
		return fmt.Errorf(
			"database.driver must be one of sqlite, postgres, mysql, valkey, got %q",
			c.Database.Driver,
		)
	}
	if w := c.Matching.DefaultCostWeight; w != nil {
		if math.IsNaN(*w) || math.IsInf(*w, 0) || *w < 0 || *w > 1 {
			return fmt.Errorf("matching.default_cost_weight must be within [0,1], got %v", *w)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
