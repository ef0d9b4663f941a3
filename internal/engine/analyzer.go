package engine

import (
	"log/slog"
	"time"

	"github.com/ThojoUno/az-alert-analysis/internal/models"
)

// Options bundles the analyzer thresholds. Zero values fall back to the
// standard parameters, so Options{} is a usable default.
type Options struct {
	StormWindow               time.Duration
	StormThreshold            int
	CorrelationThreshold      int
	TuningRatio               float64
	TuningMinAlerts           int
	TopResources              int
	TopAlertsPerSeverity      int
	IncludeHistoryTimeBuckets bool
}

func (o Options) withDefaults() Options {
	if o.StormWindow <= 0 {
		o.StormWindow = 5 * time.Minute
	}
	if o.StormThreshold <= 0 {
		o.StormThreshold = 10
	}
	if o.CorrelationThreshold <= 0 {
		o.CorrelationThreshold = 2
	}
	if o.TuningRatio <= 0 {
		o.TuningRatio = 0.7
	}
	if o.TuningMinAlerts <= 0 {
		o.TuningMinAlerts = 5
	}
	if o.TopResources <= 0 {
		o.TopResources = 20
	}
	if o.TopAlertsPerSeverity <= 0 {
		o.TopAlertsPerSeverity = 10
	}
	return o
}

// Analyzer composes the breakdown, storm, correlation, tuning, and lifecycle
// passes into one per-subscription analysis document. It is pure and
// stateless per call; one instance may serve many subscriptions.
type Analyzer struct {
	logger      *slog.Logger
	opts        Options
	storms      StormDetector
	correlation CorrelationGrouper
	tuning      TuningAdvisor
}

// NewAnalyzer constructs an Analyzer.
func NewAnalyzer(logger *slog.Logger, opts Options) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.withDefaults()
	return &Analyzer{
		logger: logger,
		opts:   opts,
		storms: StormDetector{
			Window:     opts.StormWindow,
			Threshold:  opts.StormThreshold,
			SampleSize: 5,
		},
		correlation: CorrelationGrouper{
			Threshold:  opts.CorrelationThreshold,
			SampleSize: 5,
		},
		tuning: TuningAdvisor{
			Ratio:      opts.TuningRatio,
			MinAlerts:  opts.TuningMinAlerts,
			Candidates: opts.TopResources,
		},
	}
}

// Analyze runs every pass over one subscription's normalized record set and
// assembles the analysis document. daysBack only feeds the display-only
// daily average; it never filters records.
func (a *Analyzer) Analyze(records []models.AlertRecord, daysBack int) *models.AnalysisDocument {
	breakdown := Aggregate(records, a.opts.IncludeHistoryTimeBuckets)
	lifecycle, stateBySeverity := TrackLifecycle(records)
	storms := a.storms.Detect(records)
	patterns := a.correlation.Detect(records)
	recommendations := a.tuning.Recommend(records, breakdown.Resources)

	doc := &models.AnalysisDocument{
		TotalAlerts:            breakdown.TotalAlerts,
		SeverityBreakdown:      breakdown.Severity,
		AlertStateBreakdown:    breakdown.State,
		AlertStateBySeverity:   stateBySeverity,
		AlertLifecycleMetrics:  lifecycle,
		ResourceTypeBreakdown:  breakdown.ResourceType,
		ResourceGroupBreakdown: breakdown.ResourceGroup,
		TopAlertingResources:   trimTop(breakdown.Resources, a.opts.TopResources),
		TopAlertsBySeverity:    trimRanked(breakdown.AlertsBySeverity, a.opts.TopAlertsPerSeverity),
		HourlyDistribution:     breakdown.Hourly,
		DailyDistribution:      breakdown.Daily,
		CorrelationPatterns:    patterns,
		TuningRecommendations:  recommendations,
		AlertStorms:            storms,
		ResourceHealthAlerts:   ExtractResourceHealth(records),
		DaysBack:               daysBack,
	}

	if len(storms) > 0 || len(patterns) > 0 {
		a.logger.Debug("detection pass complete",
			slog.Int("storms", len(storms)),
			slog.Int("correlation_patterns", len(patterns)),
			slog.Int("tuning_recommendations", len(recommendations)))
	}

	return doc
}

// trimTop keeps the n highest-count entries of a counting map.
func trimTop(counts map[string]int, n int) map[string]int {
	top := make(map[string]int, n)
	for _, key := range topKeys(counts, n) {
		top[key] = counts[key]
	}
	return top
}

// trimRanked keeps the n highest-count names per severity, dropping
// severities that saw no ranked alerts.
func trimRanked(ranked map[string]map[string]int, n int) map[string]map[string]int {
	out := make(map[string]map[string]int, len(ranked))
	for severity, names := range ranked {
		if len(names) == 0 {
			continue
		}
		out[severity] = trimTop(names, n)
	}
	return out
}
