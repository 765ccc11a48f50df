package models

import "time"

// Asset is an uploaded media file (page images, videos) stored in object
// storage and referenced by URL from page elements.
type Asset struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Filename    string    `bson:"filename" json:"filename"`
	URL         string    `bson:"url" json:"url"`
	Size        int64     `bson:"size" json:"size"`
	ContentType string    `bson:"content_type" json:"content_type"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
