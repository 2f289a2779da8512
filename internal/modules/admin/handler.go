package admin

import (
	"net/http"
	"strconv"

	"renthub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts admin endpoints. The group must already carry
// auth plus the admin role check.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.GetStats)

	rg.GET("/properties/pending", h.GetPendingProperties)
	rg.PATCH("/properties/:id/approve", h.ApproveProperty)
	rg.PATCH("/properties/:id/reject", h.RejectProperty)

	rg.GET("/verifications/pending", h.GetPendingVerifications)
	rg.PATCH("/verifications/:id/approve", h.ApproveVerification)
	rg.PATCH("/verifications/:id/reject", h.RejectVerification)
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id parameter")
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}

func (h *Handler) GetStats(c *gin.Context) {
	st, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load stats")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": st})
}

func (h *Handler) GetPendingProperties(c *gin.Context) {
	page, limit := pageParams(c)
	list, total, err := h.service.GetPendingProperties(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list pending properties")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"properties": list, "total": total})
}

func (h *Handler) ApproveProperty(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	adminID := c.GetInt64("user_id")
	p, err := h.service.ApproveProperty(c.Request.Context(), id, adminID)
	if err != nil {
		h.writeReviewError(c, err, "Failed to approve property")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"property": p})
}

func (h *Handler) RejectProperty(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	adminID := c.GetInt64("user_id")
	p, err := h.service.RejectProperty(c.Request.Context(), id, adminID, req.Reason)
	if err != nil {
		h.writeReviewError(c, err, "Failed to reject property")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"property": p})
}

func (h *Handler) GetPendingVerifications(c *gin.Context) {
	page, limit := pageParams(c)
	list, total, err := h.service.GetPendingVerifications(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list verifications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": list, "total": total})
}

func (h *Handler) ApproveVerification(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	adminID := c.GetInt64("user_id")
	if err := h.service.ApproveVerification(c.Request.Context(), id, adminID); err != nil {
		h.writeReviewError(c, err, "Failed to approve verification")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "approved"})
}

func (h *Handler) RejectVerification(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	adminID := c.GetInt64("user_id")
	if err := h.service.RejectVerification(c.Request.Context(), id, adminID, req.Reason); err != nil {
		h.writeReviewError(c, err, "Failed to reject verification")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "rejected"})
}

func (h *Handler) writeReviewError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	case ErrReasonRequired:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "A reason is required")
	case ErrInvalidState:
		response.Error(c, http.StatusConflict, "INVALID_STATE", "Item is not pending review")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
