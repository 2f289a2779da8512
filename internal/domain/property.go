package domain

import "time"

type PropertyStatus string

const (
	PropertyPending  PropertyStatus = "pending"
	PropertyApproved PropertyStatus = "approved"
	PropertyRejected PropertyStatus = "rejected"
)

type Property struct {
	ID           int64          `json:"id"`
	OwnerID      int64          `json:"owner_id"`
	Title        string         `json:"title" validate:"required"`
	Description  string         `json:"description"`
	City         string         `json:"city"`
	Address      string         `json:"address"`
	NightlyPrice float64        `json:"nightly_price" validate:"gte=0"`
	Currency     string         `json:"currency"`
	Photos       []string       `json:"photos"`
	Status       PropertyStatus `json:"status"`
	ReviewNotes  string         `json:"review_notes,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    *time.Time     `json:"-"`
}
