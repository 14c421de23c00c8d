package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	derrors "github.com/Aman-CERP/devdoctor/internal/errors"
)

// isolate points the user config lookup at an empty temp dir and clears env overrides.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{
		"DEVDOCTOR_MIN_DISK_GB", "DEVDOCTOR_MIN_MEMORY_GB", "DEVDOCTOR_CHECK_MEMORY",
		"DEVDOCTOR_CONTAINER_RUNTIME", "DEVDOCTOR_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestNewConfig_ReturnsDefaults(t *testing.T) {
	// Given: no configuration file exists
	cfg := NewConfig()

	// Then: the built-in tables are present in order
	require.NotNil(t, cfg)
	require.Len(t, cfg.Tools, 9)
	assert.Equal(t, ToolSpec{Name: "cmake", MinVersion: "3.15", DocsURL: "https://cmake.org/download/"}, cfg.Tools[0])
	assert.Equal(t, "python3", cfg.Tools[6].Name)
	assert.Equal(t, "npm", cfg.Tools[8].Name)

	require.Len(t, cfg.Services, 6)
	assert.Equal(t, "postgres", cfg.Services[0].Name)
	assert.Equal(t, 5432, cfg.Services[0].Port)
	assert.Equal(t, 2181, cfg.Services[5].Port)

	require.Len(t, cfg.Hosts, 4)
	for _, h := range cfg.Hosts {
		assert.Equal(t, 443, h.Port, h.Host)
	}

	assert.Equal(t, 10.0, cfg.Resources.MinDiskGB)
	assert.Equal(t, 4.0, cfg.Resources.MinMemoryGB)
	assert.False(t, cfg.Resources.CheckMemory)

	assert.Equal(t, "docker", cfg.Checks.ContainerRuntime)
	assert.Equal(t, time.Second, cfg.DialTimeoutDuration())
	assert.Equal(t, 10*time.Second, cfg.CommandTimeoutDuration())
	assert.Len(t, cfg.HelpLinks, 3)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFiles_UsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(t.TempDir(), "")

	require.NoError(t, err)
	assert.Equal(t, NewConfig(), cfg)
}

func TestLoad_ProjectFileReplacesTables(t *testing.T) {
	// Given: a project config that narrows the tool table
	isolate(t)
	dir := t.TempDir()
	content := `
tools:
  - name: go
    min_version: "1.22"
    match: semver
resources:
  min_disk_gb: 25
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".devdoctor.yaml"), []byte(content), 0644))

	// When: loading
	cfg, err := Load(dir, "")

	// Then: tools replaced, untouched tables keep defaults
	require.NoError(t, err)
	require.Len(t, cfg.Tools, 1)
	assert.Equal(t, "go", cfg.Tools[0].Name)
	assert.Equal(t, MatchSemver, cfg.Tools[0].Match)
	assert.Equal(t, 25.0, cfg.Resources.MinDiskGB)
	assert.Len(t, cfg.Services, 6)
	assert.Len(t, cfg.Hosts, 4)
}

func TestLoad_YmlFallback(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".devdoctor.yml"), []byte("log_level: debug\n"), 0644))

	cfg, err := Load(dir, "")

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_UserConfigThenProjectPrecedence(t *testing.T) {
	// Given: user config and project config both set min_disk_gb
	isolate(t)
	xdg := os.Getenv("XDG_CONFIG_HOME")
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "devdoctor"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "devdoctor", "config.yaml"),
		[]byte("resources:\n  min_disk_gb: 5\n  check_memory: true\n"), 0644))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".devdoctor.yaml"),
		[]byte("resources:\n  min_disk_gb: 7\n"), 0644))

	// When: loading
	cfg, err := Load(dir, "")

	// Then: project wins for disk, user value survives for memory toggle
	require.NoError(t, err)
	assert.Equal(t, 7.0, cfg.Resources.MinDiskGB)
	assert.True(t, cfg.Resources.CheckMemory)
}

func TestLoad_EnvOverridesWin(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".devdoctor.yaml"),
		[]byte("resources:\n  min_disk_gb: 7\n"), 0644))
	t.Setenv("DEVDOCTOR_MIN_DISK_GB", "2.5")
	t.Setenv("DEVDOCTOR_CHECK_MEMORY", "1")
	t.Setenv("DEVDOCTOR_CONTAINER_RUNTIME", "podman")

	cfg, err := Load(dir, "")

	require.NoError(t, err)
	assert.Equal(t, 2.5, cfg.Resources.MinDiskGB)
	assert.True(t, cfg.Resources.CheckMemory)
	assert.Equal(t, "podman", cfg.Checks.ContainerRuntime)
}

func TestLoad_EnvInvalidNumberIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("DEVDOCTOR_MIN_DISK_GB", "lots")

	cfg, err := Load(t.TempDir(), "")

	require.NoError(t, err)
	assert.Equal(t, 10.0, cfg.Resources.MinDiskGB)
}

func TestLoad_ExplicitPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("checks:\n  dial_timeout: 250ms\n"), 0644))

	cfg, err := Load(t.TempDir(), path)

	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.DialTimeoutDuration())
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	isolate(t)

	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Equal(t, derrors.ErrCodeConfigNotFound, derrors.GetCode(err))
}

func TestLoad_MalformedYAML(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".devdoctor.yaml"), []byte("tools: [\n"), 0644))

	_, err := Load(dir, "")

	require.Error(t, err)
	assert.Equal(t, derrors.ErrCodeConfigInvalid, derrors.GetCode(err))
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".devdoctor.yaml"),
		[]byte("services:\n  - name: redis\n    port: 70000\n"), 0644))

	_, err := Load(dir, "")

	require.Error(t, err)
	var de *derrors.DoctorError
	require.True(t, stderrors.As(err, &de))
	assert.Equal(t, derrors.CategoryConfig, de.Category)
	assert.Contains(t, de.Suggestion, "services[0].port")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"empty tool name", func(c *Config) { c.Tools[0].Name = " " }, "tools[0].name"},
		{"unknown matcher", func(c *Config) { c.Tools[1].Match = "fuzzy" }, "tools[1].match"},
		{"matcher case insensitive", func(c *Config) { c.Tools[1].Match = "SemVer" }, ""},
		{"empty service name", func(c *Config) { c.Services[2].Name = "" }, "services[2].name"},
		{"zero service port", func(c *Config) { c.Services[0].Port = 0 }, "services[0].port"},
		{"empty host", func(c *Config) { c.Hosts[3].Host = "" }, "hosts[3].host"},
		{"bad host port", func(c *Config) { c.Hosts[0].Port = -1 }, "hosts[0].port"},
		{"negative disk", func(c *Config) { c.Resources.MinDiskGB = -1 }, "min_disk_gb"},
		{"negative memory", func(c *Config) { c.Resources.MinMemoryGB = -1 }, "min_memory_gb"},
		{"empty runtime", func(c *Config) { c.Checks.ContainerRuntime = "" }, "container_runtime"},
		{"bad command timeout", func(c *Config) { c.Checks.CommandTimeout = "soon" }, "command_timeout"},
		{"zero dial timeout", func(c *Config) { c.Checks.DialTimeout = "0s" }, "dial_timeout"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MarshalledConfigRoundTrips(t *testing.T) {
	// Given: a customised config marshalled to disk
	isolate(t)
	cfg := NewConfig()
	cfg.Tools = []ToolSpec{{Name: "make"}}
	cfg.Resources.MinDiskGB = 3
	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	// When: loading it back explicitly
	loaded, err := Load(t.TempDir(), path)

	// Then: values survive
	require.NoError(t, err)
	assert.Equal(t, []ToolSpec{{Name: "make"}}, loaded.Tools)
	assert.Equal(t, 3.0, loaded.Resources.MinDiskGB)
}

func TestLoad_ProjectCanResetUserValuesToZero(t *testing.T) {
	// Given: the user config enables memory checks and raises the disk floor
	isolate(t)
	xdg := os.Getenv("XDG_CONFIG_HOME")
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "devdoctor"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "devdoctor", "config.yaml"),
		[]byte("resources:\n  min_disk_gb: 50\n  check_memory: true\n"), 0644))

	// And: the project explicitly turns both off
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".devdoctor.yaml"),
		[]byte("resources:\n  min_disk_gb: 0\n  check_memory: false\n"), 0644))

	// When: loading
	cfg, err := Load(dir, "")

	// Then: the explicit zero values win
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Resources.MinDiskGB)
	assert.False(t, cfg.Resources.CheckMemory)
	assert.Equal(t, 4.0, cfg.Resources.MinMemoryGB, "absent keys keep defaults")
}

func TestLoad_ExplicitEmptyTableClearsDefaults(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".devdoctor.yaml"), []byte("hosts: []\n"), 0644))

	cfg, err := Load(dir, "")

	require.NoError(t, err)
	assert.Empty(t, cfg.Hosts)
	assert.Len(t, cfg.Tools, 9)
}

func TestGetUserConfigPath_RespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	assert.Equal(t, filepath.Join("/tmp/xdg-test", "devdoctor", "config.yaml"), GetUserConfigPath())
	assert.Equal(t, filepath.Join("/tmp/xdg-test", "devdoctor"), GetUserConfigDir())
}

func TestDialTimeoutDuration_FallsBack(t *testing.T) {
	cfg := NewConfig()
	cfg.Checks.DialTimeout = "garbage"
	assert.Equal(t, time.Second, cfg.DialTimeoutDuration())
}

func TestLoadFile_IgnoresEnvAndUserConfig(t *testing.T) {
	isolate(t)
	t.Setenv("DEVDOCTOR_MIN_DISK_GB", "99")
	path := filepath.Join(t.TempDir(), "one.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resources:\n  min_memory_gb: 8\n"), 0644))

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, 8.0, cfg.Resources.MinMemoryGB)
	assert.Equal(t, 10.0, cfg.Resources.MinDiskGB)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Equal(t, derrors.ErrCodeConfigRead, derrors.GetCode(err))
}
