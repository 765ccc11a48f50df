package models

// Template is immutable reference data, populated out-of-band. Name doubles
// as a natural key for idempotent seeding.
type Template struct {
	ID           string                 `bson:"_id" json:"id"`
	Name         string                 `bson:"name" json:"name"`
	Description  string                 `bson:"description" json:"description"`
	Category     string                 `bson:"category" json:"category"`
	ThumbnailURL string                 `bson:"thumbnail_url" json:"thumbnail_url"`
	Settings     map[string]interface{} `bson:"settings" json:"settings"`
	Pages        []TemplatePage         `bson:"pages" json:"pages"`
}

// TemplatePage is a page blueprint: the shape of a Page minus identifiers
// and timestamps, which are generated fresh on clone.
type TemplatePage struct {
	Name        string                   `bson:"name" json:"name"`
	Slug        string                   `bson:"slug" json:"slug"`
	Elements    []map[string]interface{} `bson:"elements" json:"elements"`
	Styles      map[string]interface{}   `bson:"styles" json:"styles"`
	SEOSettings map[string]interface{}   `bson:"seo_settings" json:"seo_settings"`
}
