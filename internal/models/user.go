package models

import "time"

type User struct {
	ID               string    `bson:"_id" json:"id"`
	Email            string    `bson:"email" json:"email" validate:"required,email"`
	PasswordHash     string    `bson:"password_hash" json:"-"`
	Name             string    `bson:"name" json:"name"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	SubscriptionTier string    `bson:"subscription_tier" json:"subscription_tier"` // "free" or "paid"
}
