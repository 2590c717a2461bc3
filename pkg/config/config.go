package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

const samplePath = "/home/user/.local/share/parems/parems.db"

type Config struct {
	Database string      `toml:"database"`
	Web      WebConfig   `toml:"web"`
	Cache    CacheConfig `toml:"cache"`
}

type WebConfig struct {
	Host                  string          `toml:"host"`
	Port                  string          `toml:"port"`
	DefaultResultsPerPage int             `toml:"default_results_per_page"`
	ReadTimeout           Duration        `toml:"read_timeout"`
	RateLimit             RateLimitConfig `toml:"rate_limit"`
}

// RateLimitConfig configures the per-client token bucket of the search
// endpoints.
type RateLimitConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Enabled reports whether rate limiting should be enforced.
func (c RateLimitConfig) Enabled() bool {
	return c.RequestsPerSecond > 0 && c.Burst > 0
}

type CacheConfig struct {
	Enabled bool     `toml:"enabled"`
	TTL     Duration `toml:"ttl"`
}

// CountTTL returns how long result counts may be cached, zero when the
// cache is disabled.
func (c CacheConfig) CountTTL() time.Duration {
	if !c.Enabled {
		return 0
	}
	return c.TTL.Duration
}

type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func GetDefaultConfig() (*Config, error) {
	dbPath, err := GetDefaultDBPath()
	if err != nil {
		return nil, fmt.Errorf("getting default database path: %w", err)
	}
	cfg := &Config{
		Database: dbPath,
		Web:      WebConfig{DefaultResultsPerPage: 10},
		Cache:    CacheConfig{Enabled: true},
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Web.Host == "" {
		c.Web.Host = "localhost"
	}
	if c.Web.Port == "" {
		c.Web.Port = "8080"
	}
	if c.Web.DefaultResultsPerPage < 0 {
		c.Web.DefaultResultsPerPage = 10
	}
	if c.Web.ReadTimeout.Duration == 0 {
		c.Web.ReadTimeout = Duration{15 * time.Second}
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL = Duration{10 * time.Minute}
	}
}

// LoadConfig reads configPath. A missing file yields the defaults.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a TOML document and fills in defaults.
func Parse(data []byte) (*Config, error) {
	// Defaults that a document may switch off must be set before decoding.
	config := Config{Cache: CacheConfig{Enabled: true}}
	config.Web.DefaultResultsPerPage = 10
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.Database == "" {
		dbPath, err := GetDefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("getting default database path: %w", err)
		}
		config.Database = dbPath
	}
	config.applyDefaults()

	return &config, nil
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveTemplateConfig writes the commented sample configuration, pointing the
// database at c.Database.
func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	template := strings.Replace(configTemplate, samplePath, c.Database, 1)
	return os.WriteFile(configPath, []byte(template), 0644)
}

// Addr returns the host:port the web server listens on.
func (c *Config) Addr() string {
	return c.Web.Host + ":" + c.Web.Port
}

// GetDefaultStorageDir returns the default data directory, creating it if needed.
func GetDefaultStorageDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	dir := filepath.Join(dataDir, "parems")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating storage directory %s: %w", dir, err)
	}

	return dir, nil
}

// GetDefaultDBPath returns the default database path in the user's data directory
func GetDefaultDBPath() (string, error) {
	storageDir, err := GetDefaultStorageDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(storageDir, "parems.db"), nil
}

// GetConfigDir returns the configuration directory, creating it if needed.
func GetConfigDir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(configDir, "parems")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	return dir, nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
