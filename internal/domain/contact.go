package domain

import "time"

type ContactStatus string

const (
	ContactOpen     ContactStatus = "open"
	ContactAnswered ContactStatus = "answered"
	ContactClosed   ContactStatus = "closed"
)

// ContactMessage is one message in a contact thread. Messages sharing
// a thread key form a conversation; the first message opens the thread.
type ContactMessage struct {
	ID        int64         `json:"id"`
	ThreadKey string        `json:"thread_key"`
	UserID    *int64        `json:"user_id,omitempty"`
	Name      string        `json:"name" validate:"required"`
	Email     string        `json:"email" validate:"required,email"`
	Subject   string        `json:"subject"`
	Body      string        `json:"body" validate:"required"`
	IsReply   bool          `json:"is_reply"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}
