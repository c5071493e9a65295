package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soocke/flick-bot-go/config"
)

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := config.DefaultConfig()
	cfg.WindowTitle = "From File"
	cfg.DetectorCommand = "file-detector"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--config", path, "--window", "Game", "--debug"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	f := &flags{configPath: path, window: "Game", debug: true}
	got, err := loadConfig(cmd, f)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.WindowTitle != "Game" || !got.Debug {
		t.Fatalf("flags not applied: %+v", got)
	}
	if got.DetectorCommand != "file-detector" {
		t.Fatalf("unset flag overrode file value: %q", got.DetectorCommand)
	}
}

func TestConfigInit_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"config", "init", "--config", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	cmd = newRootCmd()
	cmd.SetArgs([]string{"config", "init", "--config", path})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected refusal to overwrite, got %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{"debug": slog.LevelDebug, "WARN": slog.LevelWarn, "error": slog.LevelError, "": slog.LevelInfo, "bogus": slog.LevelInfo}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q)=%v want %v", in, got, want)
		}
	}
}

func TestNewLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.log")
	logger := NewLogger(slog.LevelInfo, path)
	logger.Info("hello", "k", 1)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Fatalf("unexpected log contents %q", data)
	}
}
