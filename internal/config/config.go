package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/spendtrend/internal/importer"
	"github.com/cleared-dev/spendtrend/internal/log"
)

// FileName is the default configuration file name.
const FileName = "spendtrend.yaml"

// Environment variables that override file settings.
const (
	EnvDBPath   = "SPENDTREND_DB_PATH"
	EnvLogLevel = "SPENDTREND_LOG_LEVEL"
	EnvNoColor  = "SPENDTREND_NO_COLOR"
)

// Config represents the top-level spendtrend.yaml configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Import   ImportConfig   `yaml:"import"`
	Rules    RulesConfig    `yaml:"rules"`
	Trends   TrendsConfig   `yaml:"trends"`
	Report   ReportConfig   `yaml:"report"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ImportConfig selects the statement parser.
type ImportConfig struct {
	Format string `yaml:"format"`
}

// RulesConfig locates the categorization rule file.
type RulesConfig struct {
	Path string `yaml:"path"`
}

// TrendsConfig controls trend analysis.
type TrendsConfig struct {
	FillGaps bool `yaml:"fill_gaps"`
}

// ReportConfig controls terminal output.
type ReportConfig struct {
	Color      bool `yaml:"color"`
	ChartWidth int  `yaml:"chart_width"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a spendtrend.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault reads path, returning Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
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

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "data.db"},
		Import:   ImportConfig{Format: "chase"},
		Rules:    RulesConfig{Path: "rules/categorization-rules.yaml"},
		Report:   ReportConfig{Color: true, ChartWidth: 40},
		Log:      LogConfig{Level: "info"},
	}
}

// ApplyEnv loads projectDir/.env if one exists and applies SPENDTREND_*
// overrides on top of cfg. Variables already set in the environment win over
// the .env file.
func (c *Config) ApplyEnv(projectDir string) error {
	if err := godotenv.Load(filepath.Join(projectDir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	if v := os.Getenv(EnvDBPath); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvNoColor); v != "" {
		noColor, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvNoColor, v, err)
		}
		c.Report.Color = !noColor
	}
	return nil
}

// Validate returns an error listing every invalid setting.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Database.Path) == "" {
		problems = append(problems, "database.path must not be empty")
	}
	if _, err := importer.DefaultRegistry().Lookup(c.Import.Format); err != nil {
		problems = append(problems, fmt.Sprintf("import.format: %v", err))
	}
	if c.Report.ChartWidth < 10 || c.Report.ChartWidth > 200 {
		problems = append(problems, fmt.Sprintf("report.chart_width %d must be between 10 and 200", c.Report.ChartWidth))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, fmt.Sprintf("log.level: %v", err))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
