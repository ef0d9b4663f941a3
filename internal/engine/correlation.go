package engine

import (
	"sort"

	"github.com/ThojoUno/az-alert-analysis/internal/models"
)

// CorrelationGrouper groups activity events sharing a correlation identifier.
type CorrelationGrouper struct {
	Threshold  int // a group is reported when strictly larger
	SampleSize int
}

// NewCorrelationGrouper returns a grouper with the standard >2 threshold.
func NewCorrelationGrouper() CorrelationGrouper {
	return CorrelationGrouper{Threshold: 2, SampleSize: 5}
}

// Detect reports one CorrelationPattern per correlation id shared by
// strictly more than Threshold activity records. Records without a
// correlation id are excluded. Patterns come back ordered by member count
// descending, then id.
func (g CorrelationGrouper) Detect(records []models.AlertRecord) []models.CorrelationPattern {
	type group struct {
		count     int
		resources []string
		seen      map[string]struct{}
	}
	groups := make(map[string]*group)

	for _, rec := range records {
		if rec.Source != models.SourceActivityLog || rec.CorrelationID == "" {
			continue
		}
		gr := groups[rec.CorrelationID]
		if gr == nil {
			gr = &group{seen: make(map[string]struct{})}
			groups[rec.CorrelationID] = gr
		}
		gr.count++
		if rec.ResourceID == "" {
			continue
		}
		if _, ok := gr.seen[rec.ResourceID]; ok {
			continue
		}
		gr.seen[rec.ResourceID] = struct{}{}
		if len(gr.resources) < g.SampleSize {
			gr.resources = append(gr.resources, rec.ResourceID)
		}
	}

	patterns := make([]models.CorrelationPattern, 0)
	for id, gr := range groups {
		if gr.count <= g.Threshold {
			continue
		}
		patterns = append(patterns, models.CorrelationPattern{
			CorrelationID: id,
			AlertCount:    gr.count,
			Resources:     gr.resources,
		})
	}

	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].AlertCount != patterns[j].AlertCount {
			return patterns[i].AlertCount > patterns[j].AlertCount
		}
		return patterns[i].CorrelationID < patterns[j].CorrelationID
	})
	return patterns
}
