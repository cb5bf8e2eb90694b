package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KyussCaesar/pfr/internal/log"
)

// FileName is the config file inside the storage directory.
const FileName = "config.yaml"

// Environment variables consulted when resolving settings.
const (
	EnvHome     = "PFR_HOME"
	EnvLogLevel = "PFR_LOG_LEVEL"
)

// Config represents config.yaml in the storage directory.
type Config struct {
	Report  ReportConfig  `yaml:"report"`
	History HistoryConfig `yaml:"history"`
	Git     GitConfig     `yaml:"git"`
	Log     LogConfig     `yaml:"log"`
}

// ReportConfig sets report defaults.
type ReportConfig struct {
	Format string `yaml:"format"` // text or json
}

// HistoryConfig controls history.csv.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// LogConfig sets the log level and handler format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a config.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault reads <root>/config.yaml, falling back to Default when the
// file does not exist.
func LoadOrDefault(root string) (*Config, error) {
	cfg, err := Load(filepath.Join(root, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Report: ReportConfig{
			Format: "text",
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "pfr",
			AuthorEmail: "pfr@localhost",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	var problems []string

	switch strings.ToLower(c.Report.Format) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("report.format %q must be text or json", c.Report.Format))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q must be text or json", c.Log.Format))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, "log."+err.Error())
	}
	if c.Git.AutoCommit && (c.Git.AuthorName == "" || c.Git.AuthorEmail == "") {
		problems = append(problems, "git.author_name and git.author_email are required when git.auto_commit is set")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ResolveRoot picks the storage directory: the explicit flag value, then
// $PFR_HOME, then ~/.pfr.
func ResolveRoot(flagValue string) (string, error) {
	if flagValue != "" {
		return filepath.Abs(flagValue)
	}
	if env := strings.TrimSpace(os.Getenv(EnvHome)); env != "" {
		return filepath.Abs(env)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", fmt.Errorf("finding the home directory: %w", err)
	}
	return filepath.Join(home, ".pfr"), nil
}
