package domain

import "time"

type NotificationType string

const (
	NotifBookingRequest NotificationType = "booking_request"
	NotifBookingStatus  NotificationType = "booking_status"
	NotifPropertyStatus NotificationType = "property_status"
	NotifVerification   NotificationType = "verification"
	NotifContactReply   NotificationType = "contact_reply"
)

// Notification is a row addressed to exactly one recipient. It is
// immutable once written except for the read flag.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	RelatedID *int64           `json:"related_id,omitempty"`
	IsRead    bool             `json:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
