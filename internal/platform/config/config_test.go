package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"worklog/internal/platform/config"
	apperrors "worklog/internal/platform/errors"
)

func TestNewDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.StatePath != filepath.Join(dir, "work_log.json") {
		t.Fatalf("unexpected state path %s", cfg.StatePath)
	}
	if cfg.DBPath != filepath.Join(dir, ".worklog", "worklog.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
	if cfg.LogPath != filepath.Join(dir, ".worklog", "worklog.log") {
		t.Fatalf("unexpected log path %s", cfg.LogPath)
	}
	if cfg.ExportDir != filepath.Join(dir, "journal") {
		t.Fatalf("unexpected export dir %s", cfg.ExportDir)
	}
	if cfg.TickInterval != 200*time.Millisecond {
		t.Fatalf("expected 200ms tick, got %s", cfg.TickInterval)
	}
	if cfg.Location != time.Local {
		t.Fatalf("expected local timezone by default")
	}
	if cfg.Debug {
		t.Fatalf("debug should default to false")
	}
}

func TestNewRequiresDataDir(t *testing.T) {
	t.Parallel()
	if _, err := config.New("  "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestLoadReadsYAMLFromDataDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	content := "state_file: log/sessions.json\ntick_interval: 1s\ntimezone: UTC\ndebug: true\nexport_dir: /tmp/worklog-notes\n"
	if err := os.WriteFile(filepath.Join(dir, "worklog.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(dir, "", true)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StatePath != filepath.Join(dir, "log", "sessions.json") {
		t.Fatalf("unexpected state path %s", cfg.StatePath)
	}
	if cfg.TickInterval != time.Second {
		t.Fatalf("expected 1s tick, got %s", cfg.TickInterval)
	}
	if cfg.Location.String() != "UTC" {
		t.Fatalf("expected UTC location, got %s", cfg.Location)
	}
	if !cfg.Debug {
		t.Fatalf("expected debug from file")
	}
	if cfg.ExportDir != "/tmp/worklog-notes" {
		t.Fatalf("absolute export dir should be kept, got %s", cfg.ExportDir)
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.Load(dir, "", true)
	if err != nil {
		t.Fatalf("missing optional config should not fail: %v", err)
	}
	if cfg.StatePath != filepath.Join(dir, "work_log.json") {
		t.Fatalf("unexpected state path %s", cfg.StatePath)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if _, err := config.Load(dir, filepath.Join(dir, "nope.yaml"), true); err == nil {
		t.Fatalf("explicit config file that does not exist should fail")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"zero tick":    "tick_interval: 0s\n",
		"bad timezone": "timezone: Mars/Olympus_Mons\n",
	}
	for name, content := range cases {
		dir := t.TempDir()
		path := filepath.Join(dir, "custom.yaml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("%s: write config: %v", name, err)
		}
		if _, err := config.Load(dir, path, true); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("%s: expected invalid input, got %v", name, err)
		}
	}
}
