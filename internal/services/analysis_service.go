package services

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ThojoUno/az-alert-analysis/internal/engine"
	"github.com/ThojoUno/az-alert-analysis/internal/metrics"
	"github.com/ThojoUno/az-alert-analysis/internal/models"
	"github.com/ThojoUno/az-alert-analysis/internal/normalize"
	"github.com/ThojoUno/az-alert-analysis/internal/repo"
	"github.com/ThojoUno/az-alert-analysis/internal/rollup"
	"github.com/ThojoUno/az-alert-analysis/internal/utils"
)

// AnalysisService drives a full batch: discover subscription directories,
// analyze each one, then roll the results up into the tenant document.
type AnalysisService struct {
	logger       *slog.Logger
	store        *repo.SubscriptionStore
	analyzer     *engine.Analyzer
	latencies    *utils.LatencyTracker
	analysisFile string
	tenantFile   string
	daysBack     int
	maxWorkers   int
}

// Options configures a batch run.
type Options struct {
	AnalysisFile string
	TenantFile   string
	DaysBack     int
	MaxWorkers   int
}

// NewAnalysisService constructs the batch orchestrator.
func NewAnalysisService(logger *slog.Logger, store *repo.SubscriptionStore, analyzer *engine.Analyzer, opts Options) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.AnalysisFile == "" {
		opts.AnalysisFile = "analysis_data.json"
	}
	if opts.TenantFile == "" {
		opts.TenantFile = "tenant_analysis_data.json"
	}
	if opts.DaysBack <= 0 {
		opts.DaysBack = 7
	}
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = 3
	}
	return &AnalysisService{
		logger:       logger,
		store:        store,
		analyzer:     analyzer,
		latencies:    utils.NewLatencyTracker(1024),
		analysisFile: opts.AnalysisFile,
		tenantFile:   opts.TenantFile,
		daysBack:     opts.DaysBack,
		maxWorkers:   opts.MaxWorkers,
	}
}

// Run analyzes every subscription directory under the store's root and writes
// the tenant rollup. Individual subscription failures are logged and degrade
// that subscription to a zero-alert summary; Run fails only when discovery or
// the tenant write fails, or the context is cancelled.
func (s *AnalysisService) Run(ctx context.Context) (*models.TenantDocument, error) {
	dirs, err := s.store.Discover()
	if err != nil {
		return nil, err
	}
	if len(dirs) == 0 {
		s.logger.Warn("no subscription directories found")
	}

	inputs := make([]rollup.Input, len(dirs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.maxWorkers)
	for i, dir := range dirs {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			doc, identity := s.analyzeSubscription(dir)
			inputs[i] = rollup.Input{Directory: dir, Identity: identity, Document: doc}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	tenant := rollup.Merge(inputs)
	if err := s.store.WriteTenant(s.tenantFile, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("batch complete",
		"subscriptions", len(dirs),
		"with_data", tenant.SubscriptionsWithData(),
		"total_alerts", tenant.TotalAlerts,
		"run_id", tenant.RunID)
	if count := s.latencies.Count(); count > 0 {
		s.logger.Info("analysis latency",
			slog.Duration("p95", s.latencies.Percentile(95)),
			slog.Int("samples", count))
	}
	return tenant, nil
}

// Rollup rebuilds the tenant document from previously written analysis
// artifacts without touching the raw inputs. Idempotent; safe to re-run any
// number of times after a batch.
func (s *AnalysisService) Rollup() (*models.TenantDocument, error) {
	dirs, err := s.store.Discover()
	if err != nil {
		return nil, err
	}

	inputs := make([]rollup.Input, 0, len(dirs))
	for _, dir := range dirs {
		doc, err := s.store.LoadAnalysis(dir, s.analysisFile)
		if err != nil {
			s.logger.Warn("skipping unreadable analysis document",
				"directory", dir, "error", err)
			doc = nil
		}
		inputs = append(inputs, rollup.Input{
			Directory: dir,
			Identity:  s.store.Identity(dir),
			Document:  doc,
		})
	}

	tenant := rollup.Merge(inputs)
	if err := s.store.WriteTenant(s.tenantFile, tenant); err != nil {
		return nil, err
	}
	s.logger.Info("rollup complete",
		"subscriptions", len(dirs),
		"with_data", tenant.SubscriptionsWithData(),
		"total_alerts", tenant.TotalAlerts,
		"run_id", tenant.RunID)
	return tenant, nil
}

// analyzeSubscription runs the full per-directory pipeline. It never returns
// an error: failures are logged and reported as a nil document so the rollup
// still lists the subscription.
func (s *AnalysisService) analyzeSubscription(dir string) (*models.AnalysisDocument, models.SubscriptionIdentity) {
	identity := s.store.Identity(dir)
	logger := s.logger.With("directory", dir, "subscription", identity.Name)

	start := time.Now()

	activity := s.store.LoadActivity(dir)
	history := s.store.LoadHistory(dir)
	ruleCount := s.store.CountMetricRules(dir)
	metrics.CountRecords(string(models.SourceActivityLog), len(activity))
	metrics.CountRecords(string(models.SourceManagementHistory), len(history))

	records := normalize.Records(activity, history)
	doc := s.analyzer.Analyze(records, s.daysBack)
	metrics.CountDetections("storm", len(doc.AlertStorms))
	metrics.CountDetections("correlation", len(doc.CorrelationPatterns))
	metrics.CountDetections("tuning", len(doc.TuningRecommendations))

	if err := s.store.WriteAnalysis(dir, s.analysisFile, doc); err != nil {
		metrics.ObserveSubscription(time.Since(start), metrics.OutcomeError)
		logger.Error("failed to write analysis", slog.Any("error", err))
		return nil, identity
	}

	duration := time.Since(start)
	s.latencies.Observe(duration)
	metrics.ObserveSubscription(duration, metrics.OutcomeSuccess)
	logger.Info("subscription analyzed",
		"activity_alerts", len(activity),
		"history_alerts", len(history),
		"metric_rules", ruleCount,
		"total_alerts", doc.TotalAlerts)
	return doc, identity
}
