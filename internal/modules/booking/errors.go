package booking

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrDatesTaken     = errors.New("dates not available")
	ErrPropertyClosed = errors.New("property not open for booking")
	ErrOwnBooking     = errors.New("cannot book own property")

	// ErrNotFoundOrForbidden deliberately does not distinguish a missing
	// booking from someone else's booking.
	ErrNotFoundOrForbidden = errors.New("booking not found or no permission")

	ErrAlreadyApproved  = errors.New("booking already approved")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
)
