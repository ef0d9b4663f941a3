package engine

import (
	"github.com/ThojoUno/az-alert-analysis/internal/models"
	"github.com/ThojoUno/az-alert-analysis/internal/utils"
)

// Breakdown is the counting accumulator built by one linear pass over a
// subscription's normalized records. It is a value type combined through
// Merge, which is what keeps the tenant rollup order-independent.
type Breakdown struct {
	TotalAlerts      int
	Severity         map[string]int
	State            map[string]int
	ResourceType     map[string]int
	ResourceGroup    map[string]int
	Resources        map[string]int
	AlertsBySeverity map[string]map[string]int
	Hourly           map[int]int
	Daily            map[string]int
}

// NewBreakdown returns an empty accumulator with all maps allocated.
func NewBreakdown() Breakdown {
	return Breakdown{
		Severity:         make(map[string]int),
		State:            make(map[string]int),
		ResourceType:     make(map[string]int),
		ResourceGroup:    make(map[string]int),
		Resources:        make(map[string]int),
		AlertsBySeverity: make(map[string]map[string]int),
		Hourly:           make(map[int]int),
		Daily:            make(map[string]int),
	}
}

// Aggregate builds the category breakdowns for a record set. A record
// contributes at most once per category; absent fields contribute nowhere.
// Hour-of-day and day buckets are fed by activity records; history records
// join them only when includeHistoryTimeBuckets is set (the permissive
// analyzer variant).
func Aggregate(records []models.AlertRecord, includeHistoryTimeBuckets bool) Breakdown {
	b := NewBreakdown()
	b.TotalAlerts = len(records)

	for _, rec := range records {
		if rec.Severity != "" {
			b.Severity[rec.Severity]++
		}
		if rec.State != "" {
			b.State[rec.State]++
		}
		if rec.ResourceType != "" {
			b.ResourceType[rec.ResourceType]++
		}
		if rec.ResourceGroup != "" {
			b.ResourceGroup[rec.ResourceGroup]++
		}
		if rec.ResourceID != "" {
			b.Resources[rec.ResourceID]++
		}

		if rec.Source == models.SourceManagementHistory &&
			rec.Severity != "" && rec.Name != "" && models.IsRankedSeverity(rec.Severity) {
			names := b.AlertsBySeverity[rec.Severity]
			if names == nil {
				names = make(map[string]int)
				b.AlertsBySeverity[rec.Severity] = names
			}
			names[rec.Name]++
		}

		if rec.HasTimestamp() &&
			(rec.Source == models.SourceActivityLog || includeHistoryTimeBuckets) {
			b.Hourly[rec.Timestamp.Hour()]++
			b.Daily[utils.DayKey(rec.Timestamp)]++
		}
	}

	return b
}

// Merge combines two accumulators by key-wise addition. Commutative and
// associative with NewBreakdown as identity.
func (b Breakdown) Merge(other Breakdown) Breakdown {
	out := NewBreakdown()
	out.TotalAlerts = b.TotalAlerts + other.TotalAlerts
	mergeCounts(out.Severity, b.Severity, other.Severity)
	mergeCounts(out.State, b.State, other.State)
	mergeCounts(out.ResourceType, b.ResourceType, other.ResourceType)
	mergeCounts(out.ResourceGroup, b.ResourceGroup, other.ResourceGroup)
	mergeCounts(out.Resources, b.Resources, other.Resources)
	mergeNested(out.AlertsBySeverity, b.AlertsBySeverity, other.AlertsBySeverity)
	for _, src := range []map[int]int{b.Hourly, other.Hourly} {
		for hour, n := range src {
			out.Hourly[hour] += n
		}
	}
	mergeCounts(out.Daily, b.Daily, other.Daily)
	return out
}

func mergeCounts(dst map[string]int, sources ...map[string]int) {
	for _, src := range sources {
		for key, n := range src {
			dst[key] += n
		}
	}
}

func mergeNested(dst map[string]map[string]int, sources ...map[string]map[string]int) {
	for _, src := range sources {
		for outer, inner := range src {
			row := dst[outer]
			if row == nil {
				row = make(map[string]int)
				dst[outer] = row
			}
			for key, n := range inner {
				row[key] += n
			}
		}
	}
}
