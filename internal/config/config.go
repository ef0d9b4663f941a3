package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures the settings required to run one analysis batch.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Run      RunConfig      `yaml:"run"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// InputConfig locates the exported subscription directories.
type InputConfig struct {
	Root     string `yaml:"root"`
	DaysBack int    `yaml:"daysBack"`
}

// OutputConfig names the artifacts written per subscription and at the root.
type OutputConfig struct {
	AnalysisFile string `yaml:"analysisFile"`
	TenantFile   string `yaml:"tenantFile"`
}

// AnalysisConfig tunes the detectors. Defaults match the analyzer's
// documented thresholds; most deployments never change them.
type AnalysisConfig struct {
	StormWindow                 time.Duration `yaml:"stormWindow"`
	StormThreshold              int           `yaml:"stormThreshold"`
	CorrelationThreshold        int           `yaml:"correlationThreshold"`
	TuningRatio                 float64       `yaml:"tuningRatio"`
	TuningMinAlerts             int           `yaml:"tuningMinAlerts"`
	TopResources                int           `yaml:"topResources"`
	TopAlertsPerSeverity        int           `yaml:"topAlertsPerSeverity"`
	IncludeHistoryInTimeBuckets bool          `yaml:"includeHistoryInTimeBuckets"`
}

// RunConfig bounds batch execution.
type RunConfig struct {
	MaxWorkers int `yaml:"maxWorkers"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// MetricsConfig controls the optional Pushgateway push after a batch.
type MetricsConfig struct {
	PushURL string `yaml:"pushURL"`
	Job     string `yaml:"job"`
}

// Load initialises Config from a YAML file and optional environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("AZALERT_CONFIG")
	}

	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func defaultConfig() Config {
	return Config{
		Input: InputConfig{
			Root:     ".",
			DaysBack: 7,
		},
		Output: OutputConfig{
			AnalysisFile: "analysis_data.json",
			TenantFile:   "tenant_analysis_data.json",
		},
		Analysis: AnalysisConfig{
			StormWindow:          5 * time.Minute,
			StormThreshold:       10,
			CorrelationThreshold: 2,
			TuningRatio:          0.7,
			TuningMinAlerts:      5,
			TopResources:         20,
			TopAlertsPerSeverity: 10,
		},
		Run:     RunConfig{MaxWorkers: 3},
		Logging: LoggingConfig{Level: "info", JSON: false},
		Metrics: MetricsConfig{Job: "alert-analyzer"},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AZALERT_INPUT_ROOT"); v != "" {
		cfg.Input.Root = v
	}
	if v := os.Getenv("AZALERT_DAYS_BACK"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			cfg.Input.DaysBack = days
		}
	}
	if v := os.Getenv("AZALERT_MAX_WORKERS"); v != "" {
		if workers, err := strconv.Atoi(v); err == nil && workers > 0 {
			cfg.Run.MaxWorkers = workers
		}
	}
	if v := os.Getenv("AZALERT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("AZALERT_LOG_FORMAT"); v == "json" {
		cfg.Logging.JSON = true
	}
	if v := os.Getenv("AZALERT_METRICS_PUSH_URL"); v != "" {
		cfg.Metrics.PushURL = v
	}
	if v := os.Getenv("AZALERT_METRICS_JOB"); v != "" {
		cfg.Metrics.Job = v
	}
	if v := os.Getenv("AZALERT_INCLUDE_HISTORY_TIME_BUCKETS"); v != "" {
		cfg.Analysis.IncludeHistoryInTimeBuckets = strings.EqualFold(v, "true") || v == "1"
	}
}
