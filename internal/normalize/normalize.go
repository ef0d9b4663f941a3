package normalize

import (
	"github.com/ThojoUno/az-alert-analysis/internal/models"
	"github.com/ThojoUno/az-alert-analysis/internal/utils"
)

// ActivityEvent is one raw record from activity_alerts.json. Every field is
// shape-tolerant; the collector does not guarantee value types.
type ActivityEvent struct {
	ID            FlexString `json:"id"`
	Timestamp     FlexString `json:"timestamp"`
	Level         FlexString `json:"level"`
	OperationName FlexString `json:"operationName"`
	EventName     FlexString `json:"eventName"`
	ResourceID    FlexString `json:"resourceId"`
	ResourceType  FlexString `json:"resourceType"`
	ResourceGroup FlexString `json:"resourceGroup"`
	Status        FlexString `json:"status"`
	Description   FlexString `json:"description"`
	CorrelationID FlexString `json:"correlationId"`
	Category      FlexString `json:"category"`
	Caller        FlexString `json:"caller"`
}

// HistoryAlert is one raw record from alert_history.json (the alerts
// management feed).
type HistoryAlert struct {
	AlertID             FlexString `json:"alertId"`
	Name                FlexString `json:"name"`
	Severity            FlexString `json:"severity"`
	AlertState          FlexString `json:"alertState"`
	MonitorCondition    FlexString `json:"monitorCondition"`
	TargetResource      FlexString `json:"targetResource"`
	TargetResourceType  FlexString `json:"targetResourceType"`
	TargetResourceGroup FlexString `json:"targetResourceGroup"`
	StartDateTime       FlexString `json:"startDateTime"`
	LastModified        FlexString `json:"lastModifiedDateTime"`
	MonitorService      FlexString `json:"monitorService"`
	SignalType          FlexString `json:"signalType"`
	Description         FlexString `json:"description"`
	AlertRule           FlexString `json:"alertRule"`
}

// FromActivity maps a raw activity event onto the internal record shape.
// Never fails: malformed fields are absent, an unparsable timestamp leaves
// the record out of time-bucketed analyses only.
func FromActivity(ev ActivityEvent) models.AlertRecord {
	rec := models.AlertRecord{
		Source:        models.SourceActivityLog,
		Severity:      ev.Level.String(),
		ResourceID:    ev.ResourceID.String(),
		ResourceType:  ev.ResourceType.String(),
		ResourceGroup: ev.ResourceGroup.String(),
		CorrelationID: ev.CorrelationID.String(),
		Name:          ev.EventName.String(),
		ID:            ev.ID.String(),
		Description:   ev.Description.String(),
	}
	if ts, err := utils.ParseInstant(ev.Timestamp.String()); err == nil {
		rec.Timestamp = ts
	}
	return rec
}

// FromHistory maps a raw alerts-management record onto the internal record
// shape.
func FromHistory(al HistoryAlert) models.AlertRecord {
	rec := models.AlertRecord{
		Source:           models.SourceManagementHistory,
		Severity:         al.Severity.String(),
		State:            al.AlertState.String(),
		ResourceID:       al.TargetResource.String(),
		ResourceType:     al.TargetResourceType.String(),
		ResourceGroup:    al.TargetResourceGroup.String(),
		Name:             al.Name.String(),
		AlertRule:        al.AlertRule.String(),
		ID:               al.AlertID.String(),
		Description:      al.Description.String(),
		MonitorCondition: al.MonitorCondition.String(),
		MonitorService:   al.MonitorService.String(),
		LastModified:     al.LastModified.String(),
	}
	if ts, err := utils.ParseInstant(al.StartDateTime.String()); err == nil {
		rec.Timestamp = ts
	}
	return rec
}

// Records normalizes both raw feeds into one record set. Slice order is
// activity first, history second; downstream passes treat the set as a bag.
func Records(activity []ActivityEvent, history []HistoryAlert) []models.AlertRecord {
	records := make([]models.AlertRecord, 0, len(activity)+len(history))
	for _, ev := range activity {
		records = append(records, FromActivity(ev))
	}
	for _, al := range history {
		records = append(records, FromHistory(al))
	}
	return records
}
