package domain

import "time"

// Service is an entry in the care services catalogue.
type Service struct {
	ID              string    `json:"id" bson:"_id"`
	Name            string    `json:"name" bson:"name"`
	Description     string    `json:"description" bson:"description"`
	DurationMinutes int       `json:"duration_minutes" bson:"duration_minutes"`
	PricePence      int64     `json:"price_pence" bson:"price_pence"`
	Active          bool      `json:"active" bson:"active"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}
