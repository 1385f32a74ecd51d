// Package config loads application settings from defaults, an optional
// TOML or YAML file and the environment, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every setting of the application.
type Config struct {
	Server   Server   `toml:"server" yaml:"server"`
	Mongo    Mongo    `toml:"mongo" yaml:"mongo"`
	Pages    Pages    `toml:"pages" yaml:"pages"`
	Log      Log      `toml:"log" yaml:"log"`
	Security Security `toml:"security" yaml:"security"`
}

// Server configures the HTTP listener.
type Server struct {
	Port string `toml:"port" yaml:"port"`
}

// Mongo configures the document store.
type Mongo struct {
	// URI, when set, is used as is and Hostname/Database only pick the
	// database name.
	URI      string `toml:"uri" yaml:"uri"`
	Hostname string `toml:"hostname" yaml:"hostname"`
	Database string `toml:"database" yaml:"database"`
	// Timeout bounds each store operation, e.g. "5s".
	Timeout string `toml:"timeout" yaml:"timeout"`
}

// Pages configures the task list.
type Pages struct {
	ItemsPerPage int `toml:"items-per-page" yaml:"items-per-page"`
	Range        int `toml:"range" yaml:"range"`
}

// Log configures zerolog.
type Log struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Security holds the secret used to sign form tokens.
type Security struct {
	SecretKey string `toml:"secret-key" yaml:"secret-key"`
}

// Default returns the settings used when nothing overrides them.
func Default() *Config {
	return &Config{
		Server: Server{Port: "5000"},
		Mongo: Mongo{
			Hostname: "localhost:27017",
			Database: "todoapp",
			Timeout:  "5s",
		},
		Pages: Pages{ItemsPerPage: 5, Range: 3},
		Log:   Log{Level: "info", Format: "console"},
	}
}

// Load reads defaults, then the file at path if it is not empty, then the
// environment (after loading a .env file when one exists).
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// a missing .env is fine
	_ = godotenv.Load()

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config file extension %q", ext)
	}

	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("PORT", &c.Server.Port)
	str("MONGO_URI", &c.Mongo.URI)
	str("MONGODB_HOSTNAME", &c.Mongo.Hostname)
	str("MONGODB_DATABASE", &c.Mongo.Database)
	str("DB_TIMEOUT", &c.Mongo.Timeout)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("SECRET_KEY", &c.Security.SecretKey)

	if v, ok := lookup("ITEMS_PER_PAGE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ITEMS_PER_PAGE: %w", err)
		}
		c.Pages.ItemsPerPage = n
	}

	return nil
}

// Validate rejects settings the application cannot start with.
func (c *Config) Validate() error {
	if c.Mongo.Database == "" {
		return fmt.Errorf("mongo database name is required")
	}
	if c.Mongo.URI == "" && c.Mongo.Hostname == "" {
		return fmt.Errorf("mongo hostname or uri is required")
	}
	if _, err := c.DBTimeout(); err != nil {
		return err
	}
	if c.Pages.ItemsPerPage < 1 {
		return fmt.Errorf("items per page must be positive, got %d", c.Pages.ItemsPerPage)
	}
	if c.Pages.Range < 1 {
		return fmt.Errorf("page range must be positive, got %d", c.Pages.Range)
	}
	return nil
}

// MongoURI returns the connection string, assembling it from the hostname
// and database name when no URI is configured.
func (c *Config) MongoURI() string {
	if c.Mongo.URI != "" {
		return c.Mongo.URI
	}
	return fmt.Sprintf("mongodb://%s/%s", c.Mongo.Hostname, c.Mongo.Database)
}

// DBTimeout parses Mongo.Timeout.
func (c *Config) DBTimeout() (time.Duration, error) {
	if c.Mongo.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Mongo.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid mongo timeout %q: %w", c.Mongo.Timeout, err)
	}
	return d, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	if strings.Contains(c.Server.Port, ":") {
		return c.Server.Port
	}
	return ":" + c.Server.Port
}
