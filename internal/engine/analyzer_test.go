package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/ThojoUno/az-alert-analysis/internal/models"
)

func TestAnalyzeComposesAllPasses(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	var records []models.AlertRecord
	// Storm: 11 events inside one 5-minute window, all on vm-storm.
	for i := 0; i < 11; i++ {
		rec := activityRecord("vm-storm", models.LevelWarning, base.Add(time.Duration(i)*20*time.Second))
		rec.CorrelationID = "corr-1"
		records = append(records, rec)
	}
	records = append(records,
		historyRecord("vm-hist", "Sev1", models.StateNew, "CPU high", base),
		historyRecord("vm-hist", "Sev1", models.StateClosed, "CPU high", base),
	)

	doc := NewAnalyzer(nil, Options{}).Analyze(records, 7)

	if doc.TotalAlerts != 13 {
		t.Fatalf("total = %d", doc.TotalAlerts)
	}
	if len(doc.AlertStorms) != 1 || doc.AlertStorms[0].Count != 11 {
		t.Fatalf("storms = %+v", doc.AlertStorms)
	}
	if len(doc.CorrelationPatterns) != 1 || doc.CorrelationPatterns[0].AlertCount != 11 {
		t.Fatalf("patterns = %+v", doc.CorrelationPatterns)
	}
	// vm-storm carries 11 warnings, comfortably above the 70% share.
	if len(doc.TuningRecommendations) != 1 || doc.TuningRecommendations[0].Resource != "vm-storm" {
		t.Fatalf("tuning = %+v", doc.TuningRecommendations)
	}
	if doc.AlertLifecycleMetrics.NewAlerts != 1 || doc.AlertLifecycleMetrics.ClosedAlerts != 1 {
		t.Fatalf("lifecycle = %+v", doc.AlertLifecycleMetrics)
	}
	if doc.TopAlertsBySeverity["Sev1"]["CPU high"] != 2 {
		t.Fatalf("ranked = %v", doc.TopAlertsBySeverity)
	}
	if doc.HourlyDistribution[10] != 11 {
		t.Fatalf("history should stay out of hourly: %v", doc.HourlyDistribution)
	}
	if doc.DaysBack != 7 {
		t.Fatalf("days back = %d", doc.DaysBack)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	doc := NewAnalyzer(nil, Options{}).Analyze(nil, 7)
	if doc.TotalAlerts != 0 {
		t.Fatalf("total = %d", doc.TotalAlerts)
	}
	if len(doc.AlertStorms) != 0 || len(doc.CorrelationPatterns) != 0 || len(doc.TuningRecommendations) != 0 {
		t.Fatalf("empty input produced detections: %+v", doc)
	}
	if doc.Percentage(0) != 0 || doc.AverageAlertsPerDay() != 0 {
		t.Fatalf("zero denominators must rate as zero")
	}
}

func TestAnalyzeTrimsTopResources(t *testing.T) {
	var records []models.AlertRecord
	for i := 0; i < 25; i++ {
		resource := fmt.Sprintf("vm-%02d", i)
		// vm-00 gets the most alerts, descending from there.
		for j := 0; j <= 25-i; j++ {
			records = append(records, activityRecord(resource, "Error", time.Time{}))
		}
	}

	doc := NewAnalyzer(nil, Options{}).Analyze(records, 7)
	if len(doc.TopAlertingResources) != 20 {
		t.Fatalf("top resources = %d, want 20", len(doc.TopAlertingResources))
	}
	if _, ok := doc.TopAlertingResources["vm-00"]; !ok {
		t.Fatalf("busiest resource missing from the top set")
	}
	if _, ok := doc.TopAlertingResources["vm-24"]; ok {
		t.Fatalf("quietest resource should be trimmed")
	}
}

func TestAnalyzeTrimsRankedAlertsPerSeverity(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	var records []models.AlertRecord
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf("alert-%02d", i)
		for j := 0; j <= 12-i; j++ {
			records = append(records, historyRecord("vm-a", "Sev2", models.StateNew, name, base))
		}
	}

	doc := NewAnalyzer(nil, Options{}).Analyze(records, 7)
	if len(doc.TopAlertsBySeverity) != 1 {
		t.Fatalf("severities = %v", doc.TopAlertsBySeverity)
	}
	if len(doc.TopAlertsBySeverity["Sev2"]) != 10 {
		t.Fatalf("ranked entries = %d, want 10", len(doc.TopAlertsBySeverity["Sev2"]))
	}
}

func TestOptionsZeroValueGetsDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	if opts.StormWindow != 5*time.Minute || opts.StormThreshold != 10 {
		t.Fatalf("storm defaults = %+v", opts)
	}
	if opts.CorrelationThreshold != 2 || opts.TuningRatio != 0.7 || opts.TuningMinAlerts != 5 {
		t.Fatalf("detection defaults = %+v", opts)
	}
	if opts.TopResources != 20 || opts.TopAlertsPerSeverity != 10 {
		t.Fatalf("trim defaults = %+v", opts)
	}
	if opts.IncludeHistoryTimeBuckets {
		t.Fatalf("history time buckets default on")
	}
}
