package booking

type CreateBookingRequest struct {
	PropertyID int64  `json:"property_id" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Note       string `json:"note"`
}
