package booking

import (
	"context"
	"net/http"
	"strconv"

	"renthub/internal/domain"
	"renthub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts renter-facing booking endpoints. The group is
// expected to carry the auth middleware already.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings", h.ListMine)
	rg.GET("/bookings/:id", h.GetByID)
	rg.PATCH("/bookings/:id/cancel", h.Cancel)
}

// RegisterOwnerRoutes mounts owner-facing endpoints; RequireRole(owner)
// guards the group.
func (h *Handler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.ListForOwner)
	rg.PATCH("/bookings/:id/approve", h.Approve)
	rg.PATCH("/bookings/:id/reject", h.Reject)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	renterID := c.GetInt64("user_id")
	b, err := h.service.Create(c.Request.Context(), renterID, req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking date range")
		case ErrOwnBooking:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "You cannot book your own property")
		case ErrPropertyClosed:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property is not available for booking")
		case ErrDatesTaken:
			response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Property is not available for the selected dates")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) Approve(c *gin.Context) {
	h.decide(c, h.service.Approve)
}

func (h *Handler) Reject(c *gin.Context) {
	h.decide(c, h.service.Reject)
}

// decide shares the approve/reject flow: both take a booking id from
// the path and the acting owner from the auth context.
func (h *Handler) decide(c *gin.Context, op func(ctx context.Context, bookingID, ownerID int64) (*domain.Booking, error)) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	ownerID := c.GetInt64("user_id")
	b, svcErr := op(c.Request.Context(), id, ownerID)
	if svcErr != nil {
		h.writeDecisionError(c, svcErr)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	renterID := c.GetInt64("user_id")
	b, svcErr := h.service.Cancel(c.Request.Context(), id, renterID)
	if svcErr != nil {
		h.writeDecisionError(c, svcErr)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	userID := c.GetInt64("user_id")
	b, svcErr := h.service.GetByID(c.Request.Context(), id, userID)
	if svcErr != nil {
		h.writeDecisionError(c, svcErr)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ListMine(c *gin.Context) {
	limit, offset := pagination(c)
	rows, err := h.service.ListForRenter(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

func (h *Handler) ListForOwner(c *gin.Context) {
	limit, offset := pagination(c)
	rows, err := h.service.ListForOwner(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (h *Handler) writeDecisionError(c *gin.Context, err error) {
	switch err {
	case ErrNotFoundOrForbidden:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found or you don't have permission")
	case ErrAlreadyApproved:
		response.Error(c, http.StatusConflict, "INVALID_STATE", "Booking is already approved.")
	case ErrAlreadyCancelled:
		response.Error(c, http.StatusConflict, "INVALID_STATE", "Booking is already cancelled")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update booking")
	}
}
