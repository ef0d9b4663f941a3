package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Input.Root != "." || cfg.Input.DaysBack != 7 {
		t.Fatalf("input defaults = %+v", cfg.Input)
	}
	if cfg.Analysis.StormWindow != 5*time.Minute || cfg.Analysis.StormThreshold != 10 {
		t.Fatalf("storm defaults = %+v", cfg.Analysis)
	}
	if cfg.Analysis.TuningRatio != 0.7 || cfg.Analysis.TuningMinAlerts != 5 {
		t.Fatalf("tuning defaults = %+v", cfg.Analysis)
	}
	if cfg.Analysis.IncludeHistoryInTimeBuckets {
		t.Fatalf("history time buckets default on")
	}
	if cfg.Run.MaxWorkers != 3 {
		t.Fatalf("max workers = %d", cfg.Run.MaxWorkers)
	}
	if cfg.Output.AnalysisFile != "analysis_data.json" || cfg.Output.TenantFile != "tenant_analysis_data.json" {
		t.Fatalf("output defaults = %+v", cfg.Output)
	}
	if cfg.Metrics.Job != "alert-analyzer" || cfg.Metrics.PushURL != "" {
		t.Fatalf("metrics defaults = %+v", cfg.Metrics)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "analyzer.yaml")
	content := `
input:
  root: /exports
  daysBack: 30
analysis:
  stormWindow: 10m
  includeHistoryInTimeBuckets: true
run:
  maxWorkers: 8
logging:
  level: debug
  json: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Input.Root != "/exports" || cfg.Input.DaysBack != 30 {
		t.Fatalf("input = %+v", cfg.Input)
	}
	if cfg.Analysis.StormWindow != 10*time.Minute {
		t.Fatalf("storm window = %v", cfg.Analysis.StormWindow)
	}
	if !cfg.Analysis.IncludeHistoryInTimeBuckets {
		t.Fatalf("variant switch not honored")
	}
	if cfg.Run.MaxWorkers != 8 || !cfg.Logging.JSON || cfg.Logging.Level != "debug" {
		t.Fatalf("run/logging = %+v / %+v", cfg.Run, cfg.Logging)
	}
	// Untouched sections keep their defaults.
	if cfg.Analysis.StormThreshold != 10 || cfg.Output.AnalysisFile != "analysis_data.json" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AZALERT_INPUT_ROOT", "/data")
	t.Setenv("AZALERT_DAYS_BACK", "14")
	t.Setenv("AZALERT_MAX_WORKERS", "5")
	t.Setenv("AZALERT_LOG_LEVEL", "warn")
	t.Setenv("AZALERT_LOG_FORMAT", "json")
	t.Setenv("AZALERT_METRICS_PUSH_URL", "http://pushgw:9091")
	t.Setenv("AZALERT_INCLUDE_HISTORY_TIME_BUCKETS", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Input.Root != "/data" || cfg.Input.DaysBack != 14 {
		t.Fatalf("input = %+v", cfg.Input)
	}
	if cfg.Run.MaxWorkers != 5 || cfg.Logging.Level != "warn" || !cfg.Logging.JSON {
		t.Fatalf("run/logging = %+v / %+v", cfg.Run, cfg.Logging)
	}
	if cfg.Metrics.PushURL != "http://pushgw:9091" {
		t.Fatalf("metrics = %+v", cfg.Metrics)
	}
	if !cfg.Analysis.IncludeHistoryInTimeBuckets {
		t.Fatalf("variant switch env override not honored")
	}
}

func TestEnvOverrideIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("AZALERT_DAYS_BACK", "banana")
	t.Setenv("AZALERT_MAX_WORKERS", "-2")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Input.DaysBack != 7 || cfg.Run.MaxWorkers != 3 {
		t.Fatalf("invalid overrides applied: %+v / %+v", cfg.Input, cfg.Run)
	}
}
