package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingCancelled BookingStatus = "cancelled"
)

// DateLayout is the storage format for booking dates. Dates are
// date-only and kept as strings end to end.
const DateLayout = "2006-01-02"

type Booking struct {
	ID         int64         `json:"id"`
	Reference  string        `json:"reference"`
	PropertyID int64         `json:"property_id" validate:"required"`
	RenterID   int64         `json:"renter_id" validate:"required"`
	StartDate  string        `json:"start_date" validate:"required"`
	EndDate    string        `json:"end_date" validate:"required"`
	TotalPrice float64       `json:"total_price"`
	Status     BookingStatus `json:"status"`
	Note       string        `json:"note,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	Property *Property `json:"property,omitempty"`
	Renter   *User     `json:"renter,omitempty"`
}

// Nights returns the stay length in whole nights, or 0 when the dates
// do not parse or are not ordered.
func (b *Booking) Nights() int {
	start, err := time.Parse(DateLayout, b.StartDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(DateLayout, b.EndDate)
	if err != nil {
		return 0
	}
	n := int(end.Sub(start).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}
