package engine

import (
	"sort"

	"github.com/ThojoUno/az-alert-analysis/internal/models"
)

// RecommendationText is the fixed advisory attached to every tuning
// recommendation.
const RecommendationText = "Consider adjusting thresholds or reducing alert sensitivity"

// TuningAdvisor flags resources whose alert volume is dominated by
// low-severity noise.
type TuningAdvisor struct {
	Ratio      float64 // low-severity share above which a resource is flagged
	MinAlerts  int     // total count must be strictly greater
	Candidates int     // how many top resources to examine
}

// NewTuningAdvisor returns an advisor with the standard 70%/5-alert/top-20
// parameters.
func NewTuningAdvisor() TuningAdvisor {
	return TuningAdvisor{Ratio: 0.7, MinAlerts: 5, Candidates: 20}
}

// Recommend examines the most frequent alerting resources (resourceCounts,
// from the breakdown pass) and flags those where low-severity activity
// alerts (Warning/Informational) exceed the configured share of the
// resource's total. Results come back ordered by alert count descending,
// then resource id.
func (a TuningAdvisor) Recommend(records []models.AlertRecord, resourceCounts map[string]int) []models.TuningRecommendation {
	lowSeverity := make(map[string]int)
	for _, rec := range records {
		if rec.Source != models.SourceActivityLog || rec.ResourceID == "" {
			continue
		}
		if rec.Severity == models.LevelWarning || rec.Severity == models.LevelInformational {
			lowSeverity[rec.ResourceID]++
		}
	}

	recommendations := make([]models.TuningRecommendation, 0)
	for _, resource := range topKeys(resourceCounts, a.Candidates) {
		total := resourceCounts[resource]
		if total <= a.MinAlerts {
			continue
		}
		if float64(lowSeverity[resource]) > a.Ratio*float64(total) {
			recommendations = append(recommendations, models.TuningRecommendation{
				Resource:       resource,
				AlertCount:     total,
				Recommendation: RecommendationText,
			})
		}
	}

	sort.Slice(recommendations, func(i, j int) bool {
		if recommendations[i].AlertCount != recommendations[j].AlertCount {
			return recommendations[i].AlertCount > recommendations[j].AlertCount
		}
		return recommendations[i].Resource < recommendations[j].Resource
	})
	return recommendations
}

// topKeys returns up to n keys ordered by count descending, ties broken
// lexically. Map iteration order never leaks into results.
func topKeys(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if n > 0 && len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
