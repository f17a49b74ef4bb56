package models

import "time"

// Branch is a fixed fulfillment location bookings are routed to. Branches are
// created and edited through admin tooling; the booking pipeline only reads
// them.
type Branch struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Address   string    `bson:"address" json:"address"`
	Latitude  float64   `bson:"latitude" json:"latitude"`
	Longitude float64   `bson:"longitude" json:"longitude"`
	Active    bool      `bson:"active" json:"active"`
	OpensAt   string    `bson:"opens_at,omitempty" json:"opens_at,omitempty"`   // "09:00"
	ClosesAt  string    `bson:"closes_at,omitempty" json:"closes_at,omitempty"` // "21:00"
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
