// Package rollup merges per-subscription analysis documents into one
// tenant-level document. The merge is a pure, key-wise sum: associative,
// commutative, and safe to re-run any number of times.
package rollup

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ThojoUno/az-alert-analysis/internal/models"
)

// Input is one subscription's contribution to the rollup. Document is nil
// when the subscription's analysis output was missing or unreadable; such
// subscriptions still appear in the summary listing with zero alerts.
type Input struct {
	Directory string
	Identity  models.SubscriptionIdentity
	Document  *models.AnalysisDocument
}

// Merge folds every input into a tenant document. Detail lists (storms,
// correlation patterns, tuning recommendations) intentionally stay with the
// per-subscription documents.
func Merge(inputs []Input) *models.TenantDocument {
	doc := &models.TenantDocument{
		SeverityBreakdown:      make(map[string]int),
		AlertStateBreakdown:    make(map[string]int),
		AlertStateBySeverity:   make(map[string]map[string]int),
		TopAlertsBySeverity:    make(map[string]map[string]int),
		ResourceTypeBreakdown:  make(map[string]int),
		ResourceGroupBreakdown: make(map[string]int),
		TopAlertingResources:   make(map[string]int),
		HourlyDistribution:     make(map[int]int),
		DailyDistribution:      make(map[string]int),
		SubscriptionSummaries:  make([]models.SubscriptionSummary, 0, len(inputs)),
		RunID:                  uuid.NewString(),
		GeneratedAt:            time.Now().UTC(),
	}

	for _, input := range inputs {
		summary := models.SubscriptionSummary{
			Name:              input.Identity.Name,
			ID:                input.Identity.ID,
			Directory:         input.Directory,
			SeverityBreakdown: map[string]int{},
		}

		if sub := input.Document; sub != nil {
			doc.TotalAlerts += sub.TotalAlerts
			addCounts(doc.SeverityBreakdown, sub.SeverityBreakdown)
			addCounts(doc.AlertStateBreakdown, sub.AlertStateBreakdown)
			addNested(doc.AlertStateBySeverity, sub.AlertStateBySeverity)
			addNested(doc.TopAlertsBySeverity, sub.TopAlertsBySeverity)
			addCounts(doc.ResourceTypeBreakdown, sub.ResourceTypeBreakdown)
			addCounts(doc.ResourceGroupBreakdown, sub.ResourceGroupBreakdown)
			addCounts(doc.TopAlertingResources, sub.TopAlertingResources)
			for hour, n := range sub.HourlyDistribution {
				doc.HourlyDistribution[hour] += n
			}
			addCounts(doc.DailyDistribution, sub.DailyDistribution)

			doc.AlertLifecycleMetrics.NewAlerts += sub.AlertLifecycleMetrics.NewAlerts
			doc.AlertLifecycleMetrics.AcknowledgedAlerts += sub.AlertLifecycleMetrics.AcknowledgedAlerts
			doc.AlertLifecycleMetrics.ClosedAlerts += sub.AlertLifecycleMetrics.ClosedAlerts

			summary.TotalAlerts = sub.TotalAlerts
			summary.HasData = sub.TotalAlerts > 0
			summary.SeverityBreakdown = copyCounts(sub.SeverityBreakdown)
		}

		doc.SubscriptionSummaries = append(doc.SubscriptionSummaries, summary)
	}

	sort.SliceStable(doc.SubscriptionSummaries, func(i, j int) bool {
		a, b := doc.SubscriptionSummaries[i], doc.SubscriptionSummaries[j]
		if a.TotalAlerts != b.TotalAlerts {
			return a.TotalAlerts > b.TotalAlerts
		}
		return a.Name < b.Name
	})

	return doc
}

func addCounts(dst, src map[string]int) {
	for key, n := range src {
		dst[key] += n
	}
}

func addNested(dst, src map[string]map[string]int) {
	for outer, inner := range src {
		row := dst[outer]
		if row == nil {
			row = make(map[string]int, len(inner))
			dst[outer] = row
		}
		for key, n := range inner {
			row[key] += n
		}
	}
}

func copyCounts(src map[string]int) map[string]int {
	dst := make(map[string]int, len(src))
	for key, n := range src {
		dst[key] = n
	}
	return dst
}
