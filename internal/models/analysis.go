package models

import "time"

// AnalysisDocument is the per-subscription analysis result. Field names match
// the serialized analysis_data.json contract consumed by the report and
// dashboard renderers.
type AnalysisDocument struct {
	TotalAlerts            int                       `json:"total_alerts"`
	SeverityBreakdown      map[string]int            `json:"severity_breakdown"`
	AlertStateBreakdown    map[string]int            `json:"alert_state_breakdown"`
	AlertStateBySeverity   map[string]map[string]int `json:"alert_state_by_severity"`
	AlertLifecycleMetrics  LifecycleMetrics          `json:"alert_lifecycle_metrics"`
	ResourceTypeBreakdown  map[string]int            `json:"resource_type_breakdown"`
	ResourceGroupBreakdown map[string]int            `json:"resource_group_breakdown"`
	TopAlertingResources   map[string]int            `json:"top_alerting_resources"`
	TopAlertsBySeverity    map[string]map[string]int `json:"top_alerts_by_severity"`
	HourlyDistribution     map[int]int               `json:"hourly_distribution"`
	DailyDistribution      map[string]int            `json:"daily_distribution"`
	CorrelationPatterns    []CorrelationPattern      `json:"correlation_patterns"`
	TuningRecommendations  []TuningRecommendation    `json:"tuning_recommendations"`
	AlertStorms            []AlertStorm              `json:"alert_storms"`
	ResourceHealthAlerts   []ResourceHealthAlert     `json:"resource_health_alerts"`
	DaysBack               int                       `json:"days_back"`
}

// AlertStorm is a burst of activity events within one aligned window.
type AlertStorm struct {
	Time      time.Time `json:"time"`
	Count     int       `json:"count"`
	Resources []string  `json:"resources"`
}

// CorrelationPattern groups events sharing one correlation identifier.
type CorrelationPattern struct {
	CorrelationID string   `json:"correlation_id"`
	AlertCount    int      `json:"alert_count"`
	Resources     []string `json:"resources"`
}

// TuningRecommendation flags a resource dominated by low-severity noise.
type TuningRecommendation struct {
	Resource       string `json:"resource"`
	AlertCount     int    `json:"alert_count"`
	Recommendation string `json:"recommendation"`
}

// LifecycleMetrics counts management-tracked alerts by handling state. The
// two average fields are carried for contract compatibility and are always
// zero; the upstream feed exposes no acknowledge/close instants.
type LifecycleMetrics struct {
	NewAlerts            int     `json:"new_alerts"`
	AcknowledgedAlerts   int     `json:"acknowledged_alerts"`
	ClosedAlerts         int     `json:"closed_alerts"`
	AvgTimeToAcknowledge float64 `json:"avg_time_to_acknowledge"`
	AvgTimeToClose       float64 `json:"avg_time_to_close"`
}

// AcknowledgmentRate returns acknowledged alerts as a percentage of new
// alerts, or zero when no alerts are new.
func (m LifecycleMetrics) AcknowledgmentRate() float64 {
	if m.NewAlerts <= 0 {
		return 0
	}
	return float64(m.AcknowledgedAlerts) / float64(m.NewAlerts) * 100
}

// ResolutionRate returns closed alerts as a percentage of new alerts, or
// zero when no alerts are new.
func (m LifecycleMetrics) ResolutionRate() float64 {
	if m.NewAlerts <= 0 {
		return 0
	}
	return float64(m.ClosedAlerts) / float64(m.NewAlerts) * 100
}

// ResourceHealthAlert carries the detail extracted for ResourceHealth
// unhealthy-resource alerts. String fields default to "Unknown" placeholders
// rather than being omitted.
type ResourceHealthAlert struct {
	AlertID          string `json:"alert_id"`
	Name             string `json:"name"`
	Severity         string `json:"severity"`
	State            string `json:"state"`
	Resource         string `json:"resource"`
	ResourceType     string `json:"resource_type"`
	ResourceGroup    string `json:"resource_group"`
	StartTime        string `json:"start_time"`
	LastModified     string `json:"last_modified"`
	Description      string `json:"description"`
	MonitorCondition string `json:"monitor_condition"`
	MonitorService   string `json:"monitor_service"`
}

// Percentage returns count as a share of the document's total alerts,
// guarding the zero-denominator case.
func (d *AnalysisDocument) Percentage(count int) float64 {
	if d.TotalAlerts <= 0 {
		return 0
	}
	return float64(count) / float64(d.TotalAlerts) * 100
}

// AverageAlertsPerDay is the display-only daily average for the configured
// collection window. Zero when the window is degenerate.
func (d *AnalysisDocument) AverageAlertsPerDay() float64 {
	if d.DaysBack <= 0 {
		return 0
	}
	return float64(d.TotalAlerts) / float64(d.DaysBack)
}
