package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/reqwise/config"
	ConfigFileName    = "reqwise.yml"

	// DefaultTokenTTLMinutes is the access-token lifetime when neither the
	// environment nor the config file overrides it.
	DefaultTokenTTLMinutes = 30

	// DefaultListLimitMax caps the limit parameter on listing endpoints.
	DefaultListLimitMax = 100
)

// ErrSecretKeyMissing indicates the SECRET_KEY environment variable is not
// set. This is a configuration fault; token work cannot proceed without it.
var ErrSecretKeyMissing = errors.New("SECRET_KEY environment variable is required")

// Config holds all ReqWise settings.
type Config struct {
	// TokenTTLMinutes is the access-token lifetime in minutes.
	TokenTTLMinutes int `yaml:"token_ttl_minutes" json:"token_ttl_minutes"`

	// ListLimitMax is the maximum number of results for listing requests.
	ListLimitMax int `yaml:"list_limit_max" json:"list_limit_max"`

	// BindAddress is the server bind address.
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// Port is the server listen port.
	Port string `yaml:"port" json:"port"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source.
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment.
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

func newDefault() *Config {
	return &Config{
		TokenTTLMinutes: DefaultTokenTTLMinutes,
		ListLimitMax:    DefaultListLimitMax,
		BindAddress:     "0.0.0.0",
		Port:            "8000",
		sources:         make(map[string]string),
	}
}

func attributeNames() []string {
	return []string{"token_ttl_minutes", "list_limit_max", "bind_address", "port"}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("REQWISE_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func (c *Config) applyFileConfig(file *Config) {
	if file.TokenTTLMinutes != 0 {
		c.TokenTTLMinutes = file.TokenTTLMinutes
		c.sources["token_ttl_minutes"] = "file"
	}
	if file.ListLimitMax != 0 {
		c.ListLimitMax = file.ListLimitMax
		c.sources["list_limit_max"] = "file"
	}
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.Port != "" {
		c.Port = file.Port
		c.sources["port"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.TokenTTLMinutes = i
			c.sources["token_ttl_minutes"] = "environment"
		}
	}
	if val := os.Getenv("REQWISE_LIST_LIMIT_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ListLimitMax = i
			c.sources["list_limit_max"] = "environment"
		}
	}
	if val := os.Getenv("BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := os.Getenv("PORT"); val != "" {
		c.Port = val
		c.sources["port"] = "environment"
	}
}

// SecretKey returns the token signing secret from the environment. The
// secret never comes from the config file.
func SecretKey() ([]byte, error) {
	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return nil, ErrSecretKeyMissing
	}
	return []byte(secret), nil
}

// ConfigFilePath returns the path to the config file.
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute.
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TokenTTL returns the access-token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.TokenTTLMinutes <= 0 {
		return fmt.Errorf("token_ttl_minutes must be positive, got %d", c.TokenTTLMinutes)
	}
	if c.ListLimitMax <= 0 {
		return fmt.Errorf("list_limit_max must be positive, got %d", c.ListLimitMax)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	return nil
}

// Attributes returns all configuration attributes with their values and
// sources.
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "token_ttl_minutes", Value: strconv.Itoa(c.TokenTTLMinutes), Source: c.Source("token_ttl_minutes")},
		{Name: "list_limit_max", Value: strconv.Itoa(c.ListLimitMax), Source: c.Source("list_limit_max")},
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "port", Value: c.Port, Source: c.Source("port")},
	}
}

// FormatText returns a text representation of the configuration.
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-25s %-20s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-25s %-20s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-25s %-20s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration.
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
