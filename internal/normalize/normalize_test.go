package normalize

import (
	"encoding/json"
	"testing"

	"github.com/ThojoUno/az-alert-analysis/internal/models"
)

func TestFromActivityMapsFields(t *testing.T) {
	raw := `{
		"id": "evt-1",
		"timestamp": "2024-01-15T10:02:00Z",
		"level": "Warning",
		"eventName": {"value": "BeginRequest", "localizedValue": "Begin request"},
		"resourceId": "/subscriptions/s1/vm-a",
		"resourceType": {"value": "Microsoft.Compute/virtualMachines"},
		"resourceGroup": "rg-prod",
		"correlationId": "corr-1"
	}`
	var ev ActivityEvent
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		t.Fatalf("decode event: %v", err)
	}

	rec := FromActivity(ev)
	if rec.Source != models.SourceActivityLog {
		t.Fatalf("source = %q", rec.Source)
	}
	if rec.Severity != "Warning" || rec.Name != "BeginRequest" {
		t.Fatalf("severity/name = %q/%q", rec.Severity, rec.Name)
	}
	if rec.ResourceType != "Microsoft.Compute/virtualMachines" {
		t.Fatalf("resourceType = %q", rec.ResourceType)
	}
	if rec.CorrelationID != "corr-1" || rec.ResourceGroup != "rg-prod" {
		t.Fatalf("correlation/group = %q/%q", rec.CorrelationID, rec.ResourceGroup)
	}
	if !rec.HasTimestamp() || rec.Timestamp.Hour() != 10 {
		t.Fatalf("timestamp = %v", rec.Timestamp)
	}
}

func TestFromActivityUnparsableTimestamp(t *testing.T) {
	rec := FromActivity(ActivityEvent{Timestamp: "soon", Level: "Error"})
	if rec.HasTimestamp() {
		t.Fatalf("timestamp should be absent, got %v", rec.Timestamp)
	}
	if rec.Severity != "Error" {
		t.Fatalf("record should keep contributing elsewhere, severity = %q", rec.Severity)
	}
}

func TestFromHistoryMapsFields(t *testing.T) {
	rec := FromHistory(HistoryAlert{
		AlertID:        "al-1",
		Name:           "CPU usage high",
		Severity:       "Sev2",
		AlertState:     "New",
		TargetResource: "/subscriptions/s1/vm-b",
		StartDateTime:  "2024-01-15T08:00:00Z",
		MonitorService: "Platform",
	})
	if rec.Source != models.SourceManagementHistory {
		t.Fatalf("source = %q", rec.Source)
	}
	if rec.State != "New" || rec.Severity != "Sev2" {
		t.Fatalf("state/severity = %q/%q", rec.State, rec.Severity)
	}
	if rec.ResourceID != "/subscriptions/s1/vm-b" {
		t.Fatalf("resource = %q", rec.ResourceID)
	}
	if !rec.HasTimestamp() {
		t.Fatalf("expected parsed start time")
	}
}

func TestRecordsCombinesBothFeeds(t *testing.T) {
	records := Records(
		[]ActivityEvent{{Level: "Warning"}, {Level: "Error"}},
		[]HistoryAlert{{Severity: "Sev1"}},
	)
	if len(records) != 3 {
		t.Fatalf("len = %d", len(records))
	}
	if records[0].Source != models.SourceActivityLog || records[2].Source != models.SourceManagementHistory {
		t.Fatalf("unexpected source ordering")
	}
}
