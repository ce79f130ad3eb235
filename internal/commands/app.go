package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/cleared-dev/spendtrend/internal/categorize"
	"github.com/cleared-dev/spendtrend/internal/config"
	"github.com/cleared-dev/spendtrend/internal/importer"
	"github.com/cleared-dev/spendtrend/internal/log"
	"github.com/cleared-dev/spendtrend/internal/report"
	"github.com/cleared-dev/spendtrend/internal/rules"
	"github.com/cleared-dev/spendtrend/internal/storage"
)

// app bundles the configuration and services shared by subcommands.
type app struct {
	cfg  *config.Config
	log  *log.Logger
	root string // directory holding the config file; relative paths resolve here
}

func loadApp(configPath string, stderr io.Writer) (*app, error) {
	absConfig, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.LoadOrDefault(absConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.ApplyEnv(filepath.Dir(absConfig)); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logCfg := log.DefaultConfig()
	logCfg.Level = level
	logCfg.Output = stderr
	logger := log.New(logCfg)
	log.SetDefault(logger)

	return &app{cfg: cfg, log: logger, root: filepath.Dir(absConfig)}, nil
}

func (a *app) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.root, p)
}

func (a *app) openRepo() (*storage.SQLiteRepository, error) {
	repo, err := storage.NewSQLiteRepository(a.path(a.cfg.Database.Path), a.log)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return repo, nil
}

func (a *app) parser() (importer.Parser, error) {
	return importer.DefaultRegistry().Lookup(a.cfg.Import.Format)
}

func (a *app) classifier() (*categorize.Classifier, error) {
	rs, err := rules.LoadOrDefault(a.path(a.cfg.Rules.Path))
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}
	return categorize.NewClassifier(rs), nil
}

func (a *app) printer(w io.Writer) *report.Printer {
	return report.NewPrinter(w, a.cfg.Report.Color, a.cfg.Report.ChartWidth)
}
