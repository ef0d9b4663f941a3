package models

import "time"

// SubscriptionIdentity is the structured identity record for one
// subscription directory, used purely for display.
type SubscriptionIdentity struct {
	ID   string `json:"subscription_id"`
	Name string `json:"subscription_name"`
}

// UnknownIdentity stands in when a directory carries no readable identity.
func UnknownIdentity() SubscriptionIdentity {
	return SubscriptionIdentity{ID: "Unknown", Name: "Unknown"}
}

// SubscriptionSummary is one row of the tenant document's per-subscription
// listing.
type SubscriptionSummary struct {
	Name              string         `json:"name"`
	ID                string         `json:"id"`
	Directory         string         `json:"directory"`
	TotalAlerts       int            `json:"total_alerts"`
	SeverityBreakdown map[string]int `json:"severity_breakdown"`
	HasData           bool           `json:"has_data"`
}

// TenantDocument is the tenant-wide rollup of many subscription analysis
// documents. Scalars and counting maps are key-wise sums; the storm,
// correlation, and tuning detail lists deliberately stay per-subscription
// and are not merged here.
type TenantDocument struct {
	TotalAlerts            int                       `json:"total_alerts"`
	SeverityBreakdown      map[string]int            `json:"severity_breakdown"`
	AlertStateBreakdown    map[string]int            `json:"alert_state_breakdown"`
	AlertStateBySeverity   map[string]map[string]int `json:"alert_state_by_severity"`
	AlertLifecycleMetrics  LifecycleMetrics          `json:"alert_lifecycle_metrics"`
	TopAlertsBySeverity    map[string]map[string]int `json:"top_alerts_by_severity"`
	ResourceTypeBreakdown  map[string]int            `json:"resource_type_breakdown"`
	ResourceGroupBreakdown map[string]int            `json:"resource_group_breakdown"`
	TopAlertingResources   map[string]int            `json:"top_alerting_resources"`
	HourlyDistribution     map[int]int               `json:"hourly_distribution"`
	DailyDistribution      map[string]int            `json:"daily_distribution"`
	SubscriptionSummaries  []SubscriptionSummary     `json:"subscription_summary"`
	RunID                  string                    `json:"run_id"`
	GeneratedAt            time.Time                 `json:"generated_at"`
}

// SubscriptionsWithData counts subscriptions that contributed any alerts.
func (d *TenantDocument) SubscriptionsWithData() int {
	n := 0
	for _, sub := range d.SubscriptionSummaries {
		if sub.HasData {
			n++
		}
	}
	return n
}
