package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	derrors "github.com/Aman-CERP/devdoctor/internal/errors"
)

// Version matcher names accepted in ToolSpec.Match.
const (
	MatchSubstring = "substring"
	MatchExact     = "exact"
	MatchSemver    = "semver"
	MatchRegex     = "regex"
)

// Config represents the complete devdoctor configuration.
type Config struct {
	Version   int             `yaml:"version" json:"version"`
	Tools     []ToolSpec      `yaml:"tools" json:"tools"`
	Services  []ServiceSpec   `yaml:"services" json:"services"`
	Hosts     []HostSpec      `yaml:"hosts" json:"hosts"`
	Resources ResourcesConfig `yaml:"resources" json:"resources"`
	Checks    ChecksConfig    `yaml:"checks" json:"checks"`
	HelpLinks []HelpLink      `yaml:"help_links" json:"help_links"`
	LogLevel  string          `yaml:"log_level" json:"log_level"`
}

// ToolSpec describes a command-line tool that must be on PATH.
type ToolSpec struct {
	Name string `yaml:"name" json:"name"`
	// MinVersion is compared against `<name> --version` output. Empty skips
	// the version probe entirely.
	MinVersion string `yaml:"min_version,omitempty" json:"min_version,omitempty"`
	DocsURL    string `yaml:"docs_url,omitempty" json:"docs_url,omitempty"`
	// Match selects the version comparator. Empty means substring.
	Match string `yaml:"match,omitempty" json:"match,omitempty"`
}

// ServiceSpec describes a containerised service expected on localhost.
type ServiceSpec struct {
	Name    string `yaml:"name" json:"name"`
	Port    int    `yaml:"port" json:"port"`
	DocsURL string `yaml:"docs_url,omitempty" json:"docs_url,omitempty"`
}

// HostSpec describes an external endpoint that should be reachable.
type HostSpec struct {
	Host    string `yaml:"host" json:"host"`
	Service string `yaml:"service" json:"service"`
	Port    int    `yaml:"port" json:"port"`
}

// ResourcesConfig holds local resource thresholds.
type ResourcesConfig struct {
	MinDiskGB   float64 `yaml:"min_disk_gb" json:"min_disk_gb"`
	MinMemoryGB float64 `yaml:"min_memory_gb" json:"min_memory_gb"`
	// CheckMemory enables the available-memory warning. Off by default.
	CheckMemory bool `yaml:"check_memory" json:"check_memory"`
}

// ChecksConfig tunes how collaborators are invoked.
type ChecksConfig struct {
	// ContainerRuntime is the CLI queried for service status (default: docker).
	ContainerRuntime string `yaml:"container_runtime" json:"container_runtime"`
	// CommandTimeout bounds every subprocess call (e.g. "10s").
	CommandTimeout string `yaml:"command_timeout" json:"command_timeout"`
	// DialTimeout bounds every TCP connect (e.g. "1s").
	DialTimeout string `yaml:"dial_timeout" json:"dial_timeout"`
}

// HelpLink is printed at the bottom of a report that has findings.
type HelpLink struct {
	Title string `yaml:"title" json:"title"`
	URL   string `yaml:"url" json:"url"`
}

// NewConfig creates a new Config with the built-in check tables.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Tools: []ToolSpec{
			{Name: "cmake", MinVersion: "3.15", DocsURL: "https://cmake.org/download/"},
			{Name: "git", MinVersion: "2.0", DocsURL: "https://git-scm.com/downloads"},
			{Name: "docker", MinVersion: "20.0", DocsURL: "https://docs.docker.com/get-docker/"},
			{Name: "docker-compose", MinVersion: "1.29", DocsURL: "https://docs.docker.com/compose/install/"},
			{Name: "gcc", MinVersion: "9.0", DocsURL: "https://gcc.gnu.org/install/"},
			{Name: "clang", MinVersion: "10.0", DocsURL: "https://releases.llvm.org/"},
			{Name: "python3", MinVersion: "3.8", DocsURL: "https://www.python.org/downloads/"},
			{Name: "node", MinVersion: "14.0", DocsURL: "https://nodejs.org/"},
			{Name: "npm", MinVersion: "6.0", DocsURL: "https://www.npmjs.com/get-npm"},
		},
		Services: []ServiceSpec{
			{Name: "postgres", Port: 5432, DocsURL: "https://hub.docker.com/_/postgres"},
			{Name: "mongodb", Port: 27017, DocsURL: "https://hub.docker.com/_/mongo"},
			{Name: "redis", Port: 6379, DocsURL: "https://hub.docker.com/_/redis"},
			{Name: "rabbitmq", Port: 5672, DocsURL: "https://hub.docker.com/_/rabbitmq"},
			{Name: "kafka", Port: 9092, DocsURL: "https://hub.docker.com/r/confluentinc/cp-kafka"},
			{Name: "zookeeper", Port: 2181, DocsURL: "https://hub.docker.com/_/zookeeper"},
		},
		Hosts: []HostSpec{
			{Host: "github.com", Service: "Git repositories", Port: 443},
			{Host: "registry.npmjs.org", Service: "NPM packages", Port: 443},
			{Host: "pypi.org", Service: "Python packages", Port: 443},
			{Host: "cdn.jsdelivr.net", Service: "CDN services", Port: 443},
		},
		Resources: ResourcesConfig{
			MinDiskGB:   10,
			MinMemoryGB: 4,
			CheckMemory: false,
		},
		Checks: ChecksConfig{
			ContainerRuntime: "docker",
			CommandTimeout:   "10s",
			DialTimeout:      "1s",
		},
		HelpLinks: []HelpLink{
			{Title: "Project documentation", URL: "https://github.com/your-org/project/wiki"},
			{Title: "Common issues", URL: "https://github.com/your-org/project/wiki/Common-Issues"},
			{Title: "Developer setup guide", URL: "https://github.com/your-org/project/wiki/Developer-Setup"},
		},
		LogLevel: "info",
	}
}

// GetUserConfigPath returns the path to the user/global configuration file.
// It follows XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/devdoctor/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/devdoctor/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "devdoctor", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "devdoctor", "config.yaml")
	}
	return filepath.Join(home, ".config", "devdoctor", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// Load loads configuration for a run started in dir.
// It applies configuration in order of increasing precedence:
//  1. Built-in defaults
//  2. User/global config (~/.config/devdoctor/config.yaml)
//  3. Project config (.devdoctor.yaml in dir) or the explicit path
//  4. Environment variables (DEVDOCTOR_*)
func Load(dir, explicit string) (*Config, error) {
	cfg := NewConfig()

	if UserConfigExists() {
		if err := cfg.loadYAML(GetUserConfigPath()); err != nil {
			return nil, err
		}
	}

	if explicit != "" {
		if !fileExists(explicit) {
			return nil, derrors.New(derrors.ErrCodeConfigNotFound,
				fmt.Sprintf("config file not found: %s", explicit), nil).
				WithSuggestion("Run 'devdoctor config init' or check the --config path")
		}
		if err := cfg.loadYAML(explicit); err != nil {
			return nil, err
		}
	} else if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, derrors.ConfigError("invalid configuration", err).
			WithSuggestion(err.Error())
	}

	return cfg, nil
}

// ProjectConfigPath returns the project config file in dir, or "" if none exists.
func ProjectConfigPath(dir string) string {
	for _, name := range []string{".devdoctor.yaml", ".devdoctor.yml"} {
		p := filepath.Join(dir, name)
		if fileExists(p) {
			return p
		}
	}
	return ""
}

// LoadFile returns the defaults overlaid with a single config file, without
// user config or environment overrides. Used to inspect one layer.
func LoadFile(path string) (*Config, error) {
	cfg := NewConfig()
	if err := cfg.loadYAML(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile loads .devdoctor.yaml or .devdoctor.yml from dir if present.
func (c *Config) loadFromFile(dir string) error {
	if p := ProjectConfigPath(dir); p != "" {
		return c.loadYAML(p)
	}
	return nil
}

// loadYAML decodes path on top of c. Keys present in the file override the
// current values, including explicit zeros and false; a listed table
// replaces the current table wholesale. Absent keys are left untouched.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return derrors.New(derrors.ErrCodeConfigRead,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return derrors.New(derrors.ErrCodeConfigInvalid,
			fmt.Sprintf("failed to parse config file %s: %v", path, err), err)
	}
	return nil
}

// applyEnvOverrides applies DEVDOCTOR_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DEVDOCTOR_MIN_DISK_GB"); v != "" {
		if gb, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && gb >= 0 {
			c.Resources.MinDiskGB = gb
		}
	}
	if v := os.Getenv("DEVDOCTOR_MIN_MEMORY_GB"); v != "" {
		if gb, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && gb >= 0 {
			c.Resources.MinMemoryGB = gb
		}
	}
	if v := os.Getenv("DEVDOCTOR_CHECK_MEMORY"); v != "" {
		c.Resources.CheckMemory = strings.ToLower(v) == "true" || v == "1"
	}
	if v := os.Getenv("DEVDOCTOR_CONTAINER_RUNTIME"); v != "" {
		c.Checks.ContainerRuntime = v
	}
	if v := os.Getenv("DEVDOCTOR_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// CommandTimeoutDuration returns the parsed subprocess timeout.
// Invalid or empty values yield zero (no timeout); Validate rejects them first.
func (c *Config) CommandTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Checks.CommandTimeout)
	return d
}

// DialTimeoutDuration returns the parsed TCP connect timeout, falling back to 1s.
func (c *Config) DialTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Checks.DialTimeout)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	validMatchers := map[string]bool{
		"": true, MatchSubstring: true, MatchExact: true, MatchSemver: true, MatchRegex: true,
	}
	for i, t := range c.Tools {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("tools[%d].name must not be empty", i)
		}
		if !validMatchers[strings.ToLower(t.Match)] {
			return fmt.Errorf("tools[%d].match must be 'substring', 'exact', 'semver' or 'regex', got %s", i, t.Match)
		}
	}

	for i, s := range c.Services {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("services[%d].name must not be empty", i)
		}
		if !validPort(s.Port) {
			return fmt.Errorf("services[%d].port must be between 1 and 65535, got %d", i, s.Port)
		}
	}

	for i, h := range c.Hosts {
		if strings.TrimSpace(h.Host) == "" {
			return fmt.Errorf("hosts[%d].host must not be empty", i)
		}
		if !validPort(h.Port) {
			return fmt.Errorf("hosts[%d].port must be between 1 and 65535, got %d", i, h.Port)
		}
	}

	if c.Resources.MinDiskGB < 0 {
		return fmt.Errorf("resources.min_disk_gb must be non-negative, got %.1f", c.Resources.MinDiskGB)
	}
	if c.Resources.MinMemoryGB < 0 {
		return fmt.Errorf("resources.min_memory_gb must be non-negative, got %.1f", c.Resources.MinMemoryGB)
	}

	if strings.TrimSpace(c.Checks.ContainerRuntime) == "" {
		return fmt.Errorf("checks.container_runtime must not be empty")
	}
	if c.Checks.CommandTimeout != "" {
		if _, err := time.ParseDuration(c.Checks.CommandTimeout); err != nil {
			return fmt.Errorf("checks.command_timeout is not a duration: %s", c.Checks.CommandTimeout)
		}
	}
	if c.Checks.DialTimeout != "" {
		if d, err := time.ParseDuration(c.Checks.DialTimeout); err != nil || d <= 0 {
			return fmt.Errorf("checks.dial_timeout must be a positive duration, got %s", c.Checks.DialTimeout)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("log_level must be 'debug', 'info', 'warn', or 'error', got %s", c.LogLevel)
	}

	return nil
}

// JSON returns the configuration as indented JSON.
func (c *Config) JSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

func validPort(p int) bool {
	return p > 0 && p <= 65535
}

// fileExists checks if a regular file exists.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
