package engine

import (
	"sort"
	"time"

	"github.com/ThojoUno/az-alert-analysis/internal/models"
)

// StormDetector buckets activity events into fixed, non-overlapping time
// windows and flags bursts.
type StormDetector struct {
	Window     time.Duration
	Threshold  int // a window storms when it holds strictly more records
	SampleSize int
}

// NewStormDetector returns a detector with the standard 5-minute/10-alert
// parameters.
func NewStormDetector() StormDetector {
	return StormDetector{Window: 5 * time.Minute, Threshold: 10, SampleSize: 5}
}

// Detect reports one AlertStorm per window holding strictly more than
// Threshold activity records. Window starts are the record timestamp
// truncated to the window width; records without a parsable timestamp and
// management-history records are excluded. Storms come back ordered by
// window start.
func (d StormDetector) Detect(records []models.AlertRecord) []models.AlertStorm {
	window := d.Window
	if window <= 0 {
		window = 5 * time.Minute
	}

	type bucket struct {
		start     time.Time
		count     int
		resources []string
		seen      map[string]struct{}
	}
	// Keyed by instant: records rendering the same moment with different
	// zone spellings must land in one window.
	buckets := make(map[int64]*bucket)

	for _, rec := range records {
		if rec.Source != models.SourceActivityLog || !rec.HasTimestamp() {
			continue
		}
		start := rec.Timestamp.Truncate(window)
		key := start.UnixNano()
		bk := buckets[key]
		if bk == nil {
			bk = &bucket{start: start, seen: make(map[string]struct{})}
			buckets[key] = bk
		}
		bk.count++
		if rec.ResourceID == "" {
			continue
		}
		if _, ok := bk.seen[rec.ResourceID]; ok {
			continue
		}
		bk.seen[rec.ResourceID] = struct{}{}
		if len(bk.resources) < d.SampleSize {
			bk.resources = append(bk.resources, rec.ResourceID)
		}
	}

	storms := make([]models.AlertStorm, 0)
	for _, bk := range buckets {
		if bk.count <= d.Threshold {
			continue
		}
		storms = append(storms, models.AlertStorm{
			Time:      bk.start,
			Count:     bk.count,
			Resources: bk.resources,
		})
	}

	sort.Slice(storms, func(i, j int) bool {
		return storms[i].Time.Before(storms[j].Time)
	})
	return storms
}
