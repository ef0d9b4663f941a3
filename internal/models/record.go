package models

import "time"

// Source identifies which raw feed a normalized record came from.
type Source string

const (
	SourceActivityLog       Source = "activity_log"
	SourceManagementHistory Source = "management_history"
)

// Recognized Sev0 (highest) .. Sev4 (lowest) severity levels used for the
// per-severity top-alert rankings. Legacy activity-log levels
// (Critical/Error/Warning/Informational) share the severity breakdown but
// never appear in the ranked structure.
var SeverityLevels = []string{"Sev0", "Sev1", "Sev2", "Sev3", "Sev4"}

// IsRankedSeverity reports whether severity belongs to the fixed five-level set.
func IsRankedSeverity(severity string) bool {
	for _, s := range SeverityLevels {
		if s == severity {
			return true
		}
	}
	return false
}

// Lifecycle states tracked by the scalar lifecycle counters.
const (
	StateNew          = "New"
	StateAcknowledged = "Acknowledged"
	StateClosed       = "Closed"
)

// Low-noise activity levels considered by the tuning heuristic.
const (
	LevelWarning       = "Warning"
	LevelInformational = "Informational"
)

// AlertRecord is the normalized, source-agnostic representation of one raw
// alert or event. Empty strings and zero timestamps mean the field was absent
// or unusable in the raw record; such fields simply contribute to no
// breakdown.
type AlertRecord struct {
	Source        Source
	Severity      string
	State         string
	ResourceID    string
	ResourceType  string
	ResourceGroup string
	CorrelationID string
	Name          string
	Timestamp     time.Time

	// Pass-through detail used only by the ResourceHealth extraction.
	ID               string
	AlertRule        string
	Description      string
	MonitorCondition string
	MonitorService   string
	LastModified     string
}

// HasTimestamp reports whether the record carries a parsable instant and may
// participate in time-bucketed analyses.
func (r AlertRecord) HasTimestamp() bool {
	return !r.Timestamp.IsZero()
}
