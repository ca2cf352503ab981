// Package config loads runtime settings from defaults, an optional YAML file,
// .env files and CARDIOFORM_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "CARDIOFORM_"

// Config is the complete application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	API    APIConfig    `yaml:"api"`
	Theme  ThemeConfig  `yaml:"theme"`
	Log    LogConfig    `yaml:"log"`
	Form   FormConfig   `yaml:"form"`
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// APIConfig points at the prediction API.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Path    string `yaml:"path"`
	// Timeout bounds one prediction request; zero waits indefinitely.
	Timeout time.Duration `yaml:"timeout"`
}

// ThemeConfig selects the go-theme manifest and variant.
type ThemeConfig struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// FormConfig customises the form surfaces.
type FormConfig struct {
	Title        string `yaml:"title"`
	FieldsFile   string `yaml:"fields_file"`
	TemplatesDir string `yaml:"templates_dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{Listen: ":8080"},
		API:    APIConfig{BaseURL: "http://localhost:8000", Path: "/predict"},
		Theme:  ThemeConfig{Name: "cardio", Variant: "light"},
		Log:    LogConfig{Level: "info", Format: "json"},
		Form:   FormConfig{Title: "Heart Disease Risk Assessment"},
	}
}

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// Load reads path (if non-empty) over the defaults and applies process
// environment overrides.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment lookup.
func LoadWithEnv(path string, lookup LookupFunc) (Config, error) {
	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if lookup != nil {
		if err := applyEnv(&cfg, lookup); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load %s: %w", file, err)
		}
	}
	return nil
}

func applyEnv(cfg *Config, lookup LookupFunc) error {
	targets := map[string]*string{
		"LISTEN":        &cfg.Server.Listen,
		"API_BASE_URL":  &cfg.API.BaseURL,
		"API_PATH":      &cfg.API.Path,
		"THEME":         &cfg.Theme.Name,
		"THEME_VARIANT": &cfg.Theme.Variant,
		"LOG_LEVEL":     &cfg.Log.Level,
		"LOG_FORMAT":    &cfg.Log.Format,
		"FORM_TITLE":    &cfg.Form.Title,
		"FIELDS_FILE":   &cfg.Form.FieldsFile,
		"TEMPLATES_DIR": &cfg.Form.TemplatesDir,
	}
	for key, target := range targets {
		if value, ok := lookup(envPrefix + key); ok {
			*target = value
		}
	}

	if value, ok := lookup(envPrefix + "API_TIMEOUT"); ok && value != "" {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("config: %sAPI_TIMEOUT: %w", envPrefix, err)
		}
		cfg.API.Timeout = timeout
	}
	return nil
}

// Validate checks the settings that cannot be defaulted.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.API.BaseURL) == "" {
		problems = append(problems, "api.base_url is required")
	}
	if c.API.Timeout < 0 {
		problems = append(problems, "api.timeout must not be negative")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q is not json or console", c.Log.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("config: invalid: %s", strings.Join(problems, "; "))
	}
	return nil
}
