// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reqcockpit.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Paths.Python != "python3" {
		t.Errorf("expected python=python3, got %s", cfg.Paths.Python)
	}
	if !strings.HasSuffix(cfg.Paths.DataRoot, ".reqcockpit") {
		t.Errorf("expected data_root under ~/.reqcockpit, got %s", cfg.Paths.DataRoot)
	}
	if !strings.HasSuffix(cfg.Paths.Backend, filepath.Join("backend", "main.py")) {
		t.Errorf("expected backend entry under backend/main.py, got %s", cfg.Paths.Backend)
	}
	if !cfg.Transcripts.Enabled {
		t.Error("expected transcripts enabled by default")
	}
	if cfg.Invoke.Timeout != "0s" {
		t.Errorf("expected timeout=0s, got %s", cfg.Invoke.Timeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected level=info, got %s", cfg.Log.Level)
	}
}

func TestLoadWithoutConfigVariable(t *testing.T) {
	t.Setenv("REQCOCKPIT_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() without REQCOCKPIT_CONFIG must return defaults, got: %v", err)
	}
	if cfg.Paths.Python != "python3" {
		t.Errorf("expected default python, got %s", cfg.Paths.Python)
	}
}

func TestLoadWithConfigVariable(t *testing.T) {
	path := writeConfig(t, `
paths:
  data_root: /test/root
  python: /opt/python/bin/python3
`)
	t.Setenv("REQCOCKPIT_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Paths.DataRoot != "/test/root" {
		t.Errorf("expected data_root=/test/root, got %s", cfg.Paths.DataRoot)
	}
	if cfg.Paths.Python != "/opt/python/bin/python3" {
		t.Errorf("expected configured python, got %s", cfg.Paths.Python)
	}
}

func TestLoadWithBrokenConfigVariable(t *testing.T) {
	t.Setenv("REQCOCKPIT_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("a set-but-broken REQCOCKPIT_CONFIG must be an error")
	}
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
paths:
  data_root: /custom/root
invoke:
  timeout: 45s
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Paths.DataRoot != "/custom/root" {
		t.Errorf("expected data_root=/custom/root, got %s", cfg.Paths.DataRoot)
	}
	if cfg.Invoke.Timeout != "45s" {
		t.Errorf("expected timeout=45s, got %s", cfg.Invoke.Timeout)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Paths.Python != "python3" {
		t.Errorf("expected python default preserved, got %s", cfg.Paths.Python)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected level default preserved, got %s", cfg.Log.Level)
	}
}

func TestLoadFileRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "paths: [not: a: mapping")

	if _, err := LoadFile(path); err == nil {
		t.Fatal("LoadFile should reject malformed YAML")
	}
}

func TestVariableExpansion(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	path := writeConfig(t, `
paths:
  data_root: ${HOME}/cockpit-data
  backend: ${REQCOCKPIT_ROOT}/backend/main.py
transcripts:
  dir: ${UNSET_VARIABLE:-/fallback}/transcripts
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Paths.DataRoot != "/home/tester/cockpit-data" {
		t.Errorf("HOME expansion: got %s", cfg.Paths.DataRoot)
	}
	if cfg.Paths.Backend != "/home/tester/cockpit-data/backend/main.py" {
		t.Errorf("REQCOCKPIT_ROOT expansion: got %s", cfg.Paths.Backend)
	}
	if cfg.Transcripts.Dir != "/fallback/transcripts" {
		t.Errorf("default-value expansion: got %s", cfg.Transcripts.Dir)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Paths: PathsConfig{
			DataRoot: "/data",
			Python:   "python3",
			Backend:  "/data/backend/main.py",
		},
		Invoke:      InvokeConfig{Timeout: "30s"},
		Transcripts: TranscriptsConfig{Enabled: true, Dir: "/data/transcripts"},
		Log:         LogConfig{Level: "debug"},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestValidateAggregatesErrors(t *testing.T) {
	cfg := &Config{
		Invoke:      InvokeConfig{Timeout: "soon"},
		Transcripts: TranscriptsConfig{Enabled: true},
		Log:         LogConfig{Level: "loud"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid config accepted")
	}
	for _, fragment := range []string{"data_root", "python", "backend", "invoke.timeout", "transcripts.dir", "log.level"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("error %q missing %q", err.Error(), fragment)
		}
	}
}

func TestInvokeTimeout(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"0s", 0, false},
		{"", 0, false},
		{"45s", 45 * time.Second, false},
		{"2m", 2 * time.Minute, false},
		{"-5s", 0, true},
		{"eventually", 0, true},
	}
	for _, tc := range cases {
		cfg := &Config{Invoke: InvokeConfig{Timeout: tc.in}}
		got, err := cfg.InvokeTimeout()
		if tc.wantErr {
			if err == nil {
				t.Errorf("InvokeTimeout(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("InvokeTimeout(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("InvokeTimeout(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range cases {
		cfg := &Config{Log: LogConfig{Level: tc.in}}
		got, err := cfg.LogLevel()
		if err != nil {
			t.Errorf("LogLevel(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("LogLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	cfg := &Config{Log: LogConfig{Level: "loud"}}
	if _, err := cfg.LogLevel(); err == nil {
		t.Error("LogLevel(\"loud\"): expected error")
	}
}

func TestEnsurePaths(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data")
	cfg := &Config{
		Paths:       PathsConfig{DataRoot: root, Python: "python3", Backend: "x"},
		Transcripts: TranscriptsConfig{Enabled: true, Dir: filepath.Join(root, "transcripts")},
	}

	if err := cfg.EnsurePaths(); err != nil {
		t.Fatalf("EnsurePaths: %v", err)
	}

	for _, dir := range []string{root, filepath.Join(root, "projects"), filepath.Join(root, "transcripts")} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("missing directory %s: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}
}

func TestInterpreterPathUsedAsIs(t *testing.T) {
	cfg := &Config{Paths: PathsConfig{Python: "/opt/python/bin/python3"}}

	got, err := cfg.Interpreter()
	if err != nil {
		t.Fatalf("Interpreter: %v", err)
	}
	if got != "/opt/python/bin/python3" {
		t.Errorf("Interpreter = %q, want the configured path unchanged", got)
	}
}

func TestInterpreterBareNameResolved(t *testing.T) {
	// sh is present on any POSIX system this test runs on.
	cfg := &Config{Paths: PathsConfig{Python: "sh"}}

	got, err := cfg.Interpreter()
	if err != nil {
		t.Fatalf("Interpreter: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("Interpreter = %q, want an absolute resolved path", got)
	}
}

func TestInterpreterMissingFromPath(t *testing.T) {
	cfg := &Config{Paths: PathsConfig{Python: "definitely-not-an-interpreter"}}

	if _, err := cfg.Interpreter(); err == nil {
		t.Fatal("Interpreter should fail for a name missing from PATH")
	}
}
