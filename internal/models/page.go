package models

import "time"

// Page is one step of a funnel. Elements, styles and SEO settings are opaque
// payloads owned by the page editor; the backend stores them verbatim.
type Page struct {
	ID          string                   `bson:"_id" json:"id"`
	FunnelID    string                   `bson:"funnel_id" json:"funnel_id"`
	Name        string                   `bson:"name" json:"name"`
	Slug        string                   `bson:"slug" json:"slug"`
	Elements    []map[string]interface{} `bson:"elements" json:"elements"`
	Styles      map[string]interface{}   `bson:"styles" json:"styles"`
	SEOSettings map[string]interface{}   `bson:"seo_settings" json:"seo_settings"`
	CreatedAt   time.Time                `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time                `bson:"updated_at" json:"updated_at"`
}
