// Package config loads service settings from an optional YAML file and the
// process environment. Both use the same upper-case keys; a variable set in
// the environment wins over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/gartstein/companyql/internal/directory/db"
	e "github.com/gartstein/companyql/internal/directory/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config struct for YAML configuration
type Config struct {
	DBType           string `yaml:"DB_TYPE"`
	DBHost           string `yaml:"DB_HOST"`
	DBPort           int    `yaml:"DB_PORT"`
	DBUser           string `yaml:"DB_USERNAME"`
	DBPassword       string `yaml:"DB_PASSWORD"`
	DBName           string `yaml:"DB_NAME"`
	DBSSLMode        string `yaml:"DB_SSLMODE"`
	DBSync           bool   `yaml:"DB_SYNC"`
	DBConnectRetries int    `yaml:"DB_CONNECT_RETRIES"`

	AppPort    int    `yaml:"APP_PORT"`
	LogLevel   string `yaml:"LOG_LEVEL"`
	Playground bool   `yaml:"GRAPHQL_PLAYGROUND"`
}

// Default returns the settings used when neither file nor environment
// provides a value.
func Default() *Config {
	return &Config{
		DBType:           db.DriverMySQL,
		DBHost:           "localhost",
		DBPort:           3306,
		DBName:           "companyql",
		DBSSLMode:        "disable",
		DBConnectRetries: 5,
		AppPort:          3000,
		LogLevel:         "info",
	}
}

// Load reads path over the defaults, applies the environment and validates
// the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	lookupString("DB_TYPE", &c.DBType)
	lookupString("DB_HOST", &c.DBHost)
	lookupString("DB_USERNAME", &c.DBUser)
	lookupString("DB_PASSWORD", &c.DBPassword)
	lookupString("DB_NAME", &c.DBName)
	lookupString("DB_SSLMODE", &c.DBSSLMode)
	lookupString("LOG_LEVEL", &c.LogLevel)

	for key, dst := range map[string]*int{
		"DB_PORT":            &c.DBPort,
		"DB_CONNECT_RETRIES": &c.DBConnectRetries,
		"APP_PORT":           &c.AppPort,
	} {
		if err := lookupInt(key, dst); err != nil {
			return err
		}
	}
	for key, dst := range map[string]*bool{
		"DB_SYNC":            &c.DBSync,
		"GRAPHQL_PLAYGROUND": &c.Playground,
	} {
		if err := lookupBool(key, dst); err != nil {
			return err
		}
	}
	return nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.DBType {
	case db.DriverMySQL, db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("%w: DB_TYPE %q is not one of mysql, postgres, sqlite", e.ErrInvalidInput, c.DBType)
	}
	if c.DBType != db.DriverSQLite && !validPort(c.DBPort) {
		return fmt.Errorf("%w: DB_PORT %d out of range", e.ErrInvalidInput, c.DBPort)
	}
	if c.DBName == "" {
		return fmt.Errorf("%w: DB_NAME is required", e.ErrInvalidInput)
	}
	if c.AppPort != 0 && !validPort(c.AppPort) {
		return fmt.Errorf("%w: APP_PORT %d out of range", e.ErrInvalidInput, c.AppPort)
	}
	if c.DBConnectRetries < 0 {
		return fmt.Errorf("%w: DB_CONNECT_RETRIES must not be negative", e.ErrInvalidInput)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: LOG_LEVEL %q: %v", e.ErrInvalidInput, c.LogLevel, err)
	}
	return nil
}

// Level parses LogLevel into a zap level.
func (c *Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.LogLevel)
}

// DBConfig builds the repository settings.
func (c *Config) DBConfig() *db.Config {
	return &db.Config{
		Driver:   c.DBType,
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		DBName:   c.DBName,
		SSLMode:  c.DBSSLMode,
		Sync:     c.DBSync,
	}
}

func validPort(p int) bool {
	return p > 0 && p < 65536
}

func lookupString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func lookupInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not an integer", e.ErrInvalidInput, key, v)
	}
	*dst = i
	return nil
}

func lookupBool(key string, dst *bool) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a boolean", e.ErrInvalidInput, key, v)
	}
	*dst = b
	return nil
}
