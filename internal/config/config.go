package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zoodb/zoodb/internal/errors"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "zoodb.json"

	// YAMLConfigFileName is the name of the YAML configuration file, used
	// when no JSON file exists.
	YAMLConfigFileName = "zoodb.yaml"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"
)

// Habitat source kinds.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceS3       = "s3"
)

// Config represents the complete zoodb configuration.
type Config struct {
	// Name is the application name shown in the page title.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Server contains HTTP server settings.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// Static contains static file serving configuration.
	Static StaticConfig `json:"static,omitempty" yaml:"static,omitempty"`

	// Habitats configures where the habitat catalogue is loaded from.
	Habitats HabitatsConfig `json:"habitats,omitempty" yaml:"habitats,omitempty"`

	// Session contains navigation session settings.
	Session SessionConfig `json:"session,omitempty" yaml:"session,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`

	// Metrics enables the /metrics endpoint.
	Metrics *bool `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// StaticConfig contains static file serving configuration.
type StaticConfig struct {
	// Dir is the directory containing static files. Empty disables static
	// file serving.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// Prefix is the URL prefix for static files (default: "/static/").
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// HabitatsConfig selects the habitat catalogue source.
type HabitatsConfig struct {
	// Source is one of "embedded", "file" or "s3" (default: "embedded").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// File is the catalogue path for the file source.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// Watch reloads the file source when it changes.
	Watch bool `json:"watch,omitempty" yaml:"watch,omitempty"`

	// Bucket, Key and Region locate the catalogue for the s3 source.
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Key    string `json:"key,omitempty" yaml:"key,omitempty"`
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
}

// SessionConfig contains navigation session settings.
type SessionConfig struct {
	// ReadTimeout is how long a session waits for a client message (e.g. "60s").
	ReadTimeout string `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`

	// WriteTimeout bounds each message write (e.g. "10s").
	WriteTimeout string `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty"`

	// MaxMessageSize is the largest accepted client message in bytes.
	MaxMessageSize int64 `json:"maxMessageSize,omitempty" yaml:"maxMessageSize,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from dir. It looks for zoodb.json first and then
// zoodb.yaml.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		yamlPath := filepath.Join(dir, YAMLConfigFileName)
		if _, err := os.Stat(yamlPath); err == nil {
			path = yamlPath
		}
	}
	return LoadFile(path)
}

// LoadFile reads configuration from the specified file path. Files ending in
// .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or pass --config")
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := &Config{}
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E101").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// Addr returns host:port for the HTTP listener.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// MetricsEnabled reports whether /metrics is served. Defaults to true.
func (c *Config) MetricsEnabled() bool {
	return c.Server.Metrics == nil || *c.Server.Metrics
}

// ReadTimeout returns the parsed session read timeout.
func (c *Config) ReadTimeout() time.Duration {
	return parseDuration(c.Session.ReadTimeout, 60*time.Second)
}

// WriteTimeout returns the parsed session write timeout.
func (c *Config) WriteTimeout() time.Duration {
	return parseDuration(c.Session.WriteTimeout, 10*time.Second)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "Zoo Database"
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Static.Prefix == "" {
		c.Static.Prefix = "/static/"
	}
	if c.Habitats.Source == "" {
		c.Habitats.Source = SourceEmbedded
		if c.Habitats.File != "" {
			c.Habitats.Source = SourceFile
		}
	}
	if c.Session.ReadTimeout == "" {
		c.Session.ReadTimeout = "60s"
	}
	if c.Session.WriteTimeout == "" {
		c.Session.WriteTimeout = "10s"
	}
	if c.Session.MaxMessageSize == 0 {
		c.Session.MaxMessageSize = 64 * 1024
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E102")
	}

	switch c.Habitats.Source {
	case SourceEmbedded:
	case SourceFile:
		if c.Habitats.File == "" {
			return errors.New("E103").WithDetail("habitats.file is required for the file source")
		}
	case SourceS3:
		if c.Habitats.Bucket == "" || c.Habitats.Key == "" {
			return errors.New("E103").WithDetail("habitats.bucket and habitats.key are required for the s3 source")
		}
	default:
		return errors.New("E103").WithDetail("Unknown habitat source " + `"` + c.Habitats.Source + `"`)
	}

	for _, d := range []struct{ name, value string }{
		{"session.readTimeout", c.Session.ReadTimeout},
		{"session.writeTimeout", c.Session.WriteTimeout},
	} {
		if _, err := time.ParseDuration(d.value); err != nil {
			return errors.New("E101").WithDetail(d.name + " is not a valid duration: " + d.value)
		}
	}
	return nil
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
