package engine

import (
	"strings"
	"time"

	"github.com/ThojoUno/az-alert-analysis/internal/models"
)

const resourceHealthMarker = "ResourceHealthUnhealthyAlert"

// ExtractResourceHealth pulls out the detail entries for ResourceHealth
// unhealthy-resource alerts, matched by name or alert rule. Missing fields
// get "Unknown" placeholders, matching the downstream report contract.
func ExtractResourceHealth(records []models.AlertRecord) []models.ResourceHealthAlert {
	details := make([]models.ResourceHealthAlert, 0)
	for _, rec := range records {
		name := rec.Name
		if name == "" {
			name = rec.AlertRule
		}
		if !strings.Contains(name, resourceHealthMarker) {
			continue
		}

		service := rec.MonitorService
		if service == "" {
			service = "ResourceHealth"
		}
		description := rec.Description
		if description == "" {
			description = "No description available"
		}

		details = append(details, models.ResourceHealthAlert{
			AlertID:          orUnknown(rec.ID),
			Name:             name,
			Severity:         orUnknown(rec.Severity),
			State:            orUnknown(rec.State),
			Resource:         orUnknown(rec.ResourceID),
			ResourceType:     orUnknown(rec.ResourceType),
			ResourceGroup:    orUnknown(rec.ResourceGroup),
			StartTime:        instantOrUnknown(rec.Timestamp),
			LastModified:     orUnknown(rec.LastModified),
			Description:      description,
			MonitorCondition: orUnknown(rec.MonitorCondition),
			MonitorService:   service,
		})
	}
	return details
}

func orUnknown(value string) string {
	if value == "" {
		return "Unknown"
	}
	return value
}

func instantOrUnknown(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format(time.RFC3339)
}
