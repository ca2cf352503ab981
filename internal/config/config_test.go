package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func envMap(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadWithEnv("", envMap(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if cfg.API.Timeout != 0 {
		t.Fatalf("expected no timeout by default")
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cardioform.yaml")
	doc := []byte(`
server:
  listen: ":9090"
api:
  base_url: "http://ml.internal:8000"
  timeout: 5s
theme:
  variant: dark
log:
  format: console
`)
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadWithEnv(path, envMap(map[string]string{
		"CARDIOFORM_LISTEN":      ":7070",
		"CARDIOFORM_API_TIMEOUT": "250ms",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Default()
	want.Server.Listen = ":7070"
	want.API.BaseURL = "http://ml.internal:8000"
	want.API.Timeout = 250 * time.Millisecond
	want.Theme.Variant = "dark"
	want.Log.Format = "console"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"bad timeout":   {"CARDIOFORM_API_TIMEOUT": "soon"},
		"empty base":    {"CARDIOFORM_API_BASE_URL": ""},
		"bad format":    {"CARDIOFORM_LOG_FORMAT": "xml"},
		"negative wait": {"CARDIOFORM_API_TIMEOUT": "-1s"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadWithEnv("", envMap(env)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yaml"), envMap(nil)); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("CARDIOFORM_TEST_DOTENV=from-file\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("CARDIOFORM_TEST_DOTENV") })

	if err := LoadDotEnv(path, filepath.Join(dir, "absent.env")); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv("CARDIOFORM_TEST_DOTENV"); got != "from-file" {
		t.Fatalf("expected value from .env, got %q", got)
	}
}
