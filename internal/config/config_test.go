package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Config{
		Client:  ClientConfig{Endpoint: "http://localhost:3000/newsletter-signup"},
		Server:  ServerConfig{Addr: ":3000", ShutdownTimeout: 5 * time.Second},
		Render:  RenderConfig{Renderer: "html", Locale: "en", Title: "Newsletter signup"},
		Log:     LogConfig{Level: "info"},
		Dataset: DatasetConfig{},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `client:
  endpoint: https://example.com/signup
  timeout: 3s
server:
  fail_status: 500
render:
  theme: dark
  vars:
    accent: "#ff0066"
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SIGNUP_SERVER_ADDR", "127.0.0.1:8080")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Client.Endpoint != "https://example.com/signup" || cfg.Client.Timeout != 3*time.Second {
		t.Fatalf("client config = %+v", cfg.Client)
	}
	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Fatalf("env override ignored, addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.FailStatus != 500 {
		t.Fatalf("fail status = %d", cfg.Server.FailStatus)
	}
	if cfg.Render.Theme != "dark" || cfg.Render.Vars["accent"] != "#ff0066" {
		t.Fatalf("render config = %+v", cfg.Render)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadRejectsBadLevel(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SIGNUP_LOG_LEVEL", "loud")

	if _, err := Load(""); err == nil {
		t.Fatal("expected invalid level error")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for input, want := range cases {
		got, err := ParseLevel(input)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
