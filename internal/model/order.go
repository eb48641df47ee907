package model

import "time"

// Order mirrors the 'orders' table. The record is intentionally small;
// orders here are plain named entries managed through the CRUD surface.
type Order struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
