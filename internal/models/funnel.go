package models

import "time"

type Funnel struct {
	ID          string                 `bson:"_id" json:"id"`
	UserID      string                 `bson:"user_id" json:"user_id"`
	Name        string                 `bson:"name" json:"name"`
	Description string                 `bson:"description" json:"description"`
	Pages       []string               `bson:"pages" json:"pages"` // ordered page IDs, kept in sync with the pages collection
	Settings    map[string]interface{} `bson:"settings" json:"settings"`
	CreatedAt   time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time              `bson:"updated_at" json:"updated_at"`
	Published   bool                   `bson:"published" json:"published"`
}
