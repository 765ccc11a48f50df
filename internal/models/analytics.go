package models

import "time"

// Known event types. EventType is an open string; unknown types are stored
// as-is and simply ignored by the summary.
const (
	EventPageView    = "page_view"
	EventButtonClick = "button_click"
	EventFormSubmit  = "form_submit"
)

// AnalyticsEvent is append-only: never updated or deleted.
type AnalyticsEvent struct {
	ID        string                 `bson:"_id" json:"id"`
	FunnelID  string                 `bson:"funnel_id" json:"funnel_id"`
	PageID    string                 `bson:"page_id,omitempty" json:"page_id,omitempty"`
	EventType string                 `bson:"event_type" json:"event_type"`
	Metadata  map[string]interface{} `bson:"metadata" json:"metadata"`
	Timestamp time.Time              `bson:"timestamp" json:"timestamp"`
}

// FunnelSummary is the aggregate returned for a funnel's events.
type FunnelSummary struct {
	FunnelID        string  `json:"funnel_id"`
	PageViews       int     `json:"page_views"`
	ButtonClicks    int     `json:"button_clicks"`
	FormSubmissions int     `json:"form_submissions"`
	ConversionRate  float64 `json:"conversion_rate"`
}
