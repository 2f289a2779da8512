package admin

type ReviewRequest struct {
	Reason string `json:"reason"`
}

type Stats struct {
	PendingProperties    int64 `json:"pending_properties"`
	ApprovedProperties   int64 `json:"approved_properties"`
	PendingBookings      int64 `json:"pending_bookings"`
	ApprovedBookings     int64 `json:"approved_bookings"`
	CancelledBookings    int64 `json:"cancelled_bookings"`
	PendingVerifications int64 `json:"pending_verifications"`
	OpenMessages         int64 `json:"open_messages"`
	Owners               int64 `json:"owners"`
	Renters              int64 `json:"renters"`
}
