package engine

import (
	"github.com/ThojoUno/az-alert-analysis/internal/models"
)

// TrackLifecycle classifies management-history records by handling state.
// The scalar counters cover the recognized New/Acknowledged/Closed states
// only; the severity-by-state matrix records every observed state for
// records that also carry a severity.
func TrackLifecycle(records []models.AlertRecord) (models.LifecycleMetrics, map[string]map[string]int) {
	var metrics models.LifecycleMetrics
	matrix := make(map[string]map[string]int)

	for _, rec := range records {
		if rec.Source != models.SourceManagementHistory || rec.State == "" {
			continue
		}

		if rec.Severity != "" {
			row := matrix[rec.Severity]
			if row == nil {
				row = make(map[string]int)
				matrix[rec.Severity] = row
			}
			row[rec.State]++
		}

		switch rec.State {
		case models.StateNew:
			metrics.NewAlerts++
		case models.StateAcknowledged:
			metrics.AcknowledgedAlerts++
		case models.StateClosed:
			metrics.ClosedAlerts++
		}
	}

	return metrics, matrix
}
