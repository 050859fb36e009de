// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/reqcockpit/reqcockpit/lib/project"
)

// Config is the master configuration for ReqCockpit binaries.
type Config struct {
	// Paths configures filesystem locations and the backend entry
	// point.
	Paths PathsConfig `yaml:"paths"`

	// Invoke configures backend invocation behavior.
	Invoke InvokeConfig `yaml:"invoke"`

	// Transcripts configures invocation transcript recording.
	Transcripts TranscriptsConfig `yaml:"transcripts"`

	// Log configures logging.
	Log LogConfig `yaml:"log"`
}

// PathsConfig configures filesystem locations.
type PathsConfig struct {
	// DataRoot is the application data root holding project stores
	// and the recent projects registry. Default: ~/.reqcockpit
	DataRoot string `yaml:"data_root"`

	// Python is the backend interpreter: a bare name resolved
	// against PATH, or a path used as-is. Default: python3
	Python string `yaml:"python"`

	// Backend is the backend entry point script.
	// Default: <data_root>/backend/main.py
	Backend string `yaml:"backend"`
}

// InvokeConfig configures backend invocation behavior.
type InvokeConfig struct {
	// Timeout bounds each backend invocation, as a Go duration
	// string. "0s" means no bound: the bridge waits as long as the
	// backend runs. Default: 0s
	Timeout string `yaml:"timeout"`
}

// TranscriptsConfig configures invocation transcript recording.
type TranscriptsConfig struct {
	// Enabled turns transcript recording on.
	// Default: true (the bridge daemon records by default).
	Enabled bool `yaml:"enabled"`

	// Dir is the transcript directory.
	// Default: <data_root>/transcripts
	Dir string `yaml:"dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is the minimum level: debug, info, warn, or error.
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the out-of-the-box configuration: everything under
// ~/.reqcockpit, python3 from PATH, no invocation timeout,
// transcripts enabled.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultRoot := filepath.Join(homeDir, ".reqcockpit")

	return &Config{
		Paths: PathsConfig{
			DataRoot: defaultRoot,
			Python:   "python3",
			Backend:  filepath.Join(defaultRoot, "backend", "main.py"),
		},
		Invoke: InvokeConfig{
			Timeout: "0s",
		},
		Transcripts: TranscriptsConfig{
			Enabled: true,
			Dir:     filepath.Join(defaultRoot, "transcripts"),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the file named by REQCOCKPIT_CONFIG,
// or returns [Default] when the variable is unset. A set-but-broken
// REQCOCKPIT_CONFIG is an error, never silently ignored.
func Load() (*Config, error) {
	configPath := os.Getenv("REQCOCKPIT_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merging
// over [Default]. The config file is the single source of truth:
// environment variables do not override config values. The only
// expansion performed is ${HOME} and similar path variables for
// portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// path fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"REQCOCKPIT_ROOT": c.Paths.DataRoot,
		"HOME":            os.Getenv("HOME"),
	}

	c.Paths.DataRoot = expandVars(c.Paths.DataRoot, vars)
	vars["REQCOCKPIT_ROOT"] = c.Paths.DataRoot // Update for dependent paths.

	c.Paths.Python = expandVars(c.Paths.Python, vars)
	c.Paths.Backend = expandVars(c.Paths.Backend, vars)
	c.Transcripts.Dir = expandVars(c.Transcripts.Dir, vars)
}

// varPattern matches ${VAR} and ${VAR:-default} references.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Explicit vars win over the process environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate reports every configuration problem at once rather than
// stopping at the first.
func (c *Config) Validate() error {
	var errs []error

	if c.Paths.DataRoot == "" {
		errs = append(errs, fmt.Errorf("paths.data_root is required"))
	}
	if c.Paths.Python == "" {
		errs = append(errs, fmt.Errorf("paths.python is required"))
	}
	if c.Paths.Backend == "" {
		errs = append(errs, fmt.Errorf("paths.backend is required"))
	}

	if _, err := c.InvokeTimeout(); err != nil {
		errs = append(errs, err)
	}

	if c.Transcripts.Enabled && c.Transcripts.Dir == "" {
		errs = append(errs, fmt.Errorf("transcripts.dir is required when transcripts are enabled"))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// InvokeTimeout returns the per-invocation bound. Zero means no
// bound. An empty string is treated as zero.
func (c *Config) InvokeTimeout() (time.Duration, error) {
	if c.Invoke.Timeout == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(c.Invoke.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invoke.timeout %q is not a duration: %w", c.Invoke.Timeout, err)
	}
	if timeout < 0 {
		return 0, fmt.Errorf("invoke.timeout must not be negative: %s", c.Invoke.Timeout)
	}
	return timeout, nil
}

// LogLevel maps log.level onto a slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log.level must be debug, info, warn, or error; got %q", c.Log.Level)
	}
}

// EnsurePaths creates the configured directories if they don't
// exist: the data root, the project store directory, and (when
// enabled) the transcript directory.
func (c *Config) EnsurePaths() error {
	paths := []string{
		c.Paths.DataRoot,
		project.StoreDir(c.Paths.DataRoot),
	}
	if c.Transcripts.Enabled {
		paths = append(paths, c.Transcripts.Dir)
	}

	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}

	return nil
}

// Interpreter resolves the backend interpreter to an executable
// path. A value containing a path separator is used as-is (hermetic
// configuration); a bare name is resolved against PATH. A bare name
// missing from PATH is an installation fault reported here, before
// any invocation is attempted.
func (c *Config) Interpreter() (string, error) {
	python := c.Paths.Python
	if strings.ContainsRune(python, os.PathSeparator) {
		return python, nil
	}

	path, err := exec.LookPath(python)
	if err != nil {
		return "", fmt.Errorf("interpreter %q not found in PATH: %w", python, err)
	}
	return path, nil
}
