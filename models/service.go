package models

import "time"

// Service is a catalog entry. The booking pipeline only reads it: the name,
// category and base price are snapshotted onto the booking at creation time.
type Service struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Category  string    `bson:"category" json:"category"`
	BasePrice float64   `bson:"base_price" json:"base_price"`
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
