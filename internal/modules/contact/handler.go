package contact

import (
	"net/http"
	"strconv"

	"renthub/internal/domain"
	"renthub/internal/pkg/response"
	"renthub/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the visitor-facing contact form.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact", h.Submit)
}

// RegisterAdminRoutes mounts the triage endpoints; the group carries
// the admin role check.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/messages", h.List)
	rg.GET("/messages/:id/thread", h.GetThread)
	rg.POST("/messages/:id/reply", h.Reply)
	rg.PATCH("/messages/:id/close", h.Close)
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if fields := validator.Validate(&req); fields != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid request fields", fields)
		return
	}

	// Present when the visitor is logged in, zero otherwise.
	userID := c.GetInt64("user_id")

	msg, err := h.service.Submit(c.Request.Context(), userID, req)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Subject and body are required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit message")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": msg})
}

func (h *Handler) List(c *gin.Context) {
	status := domain.ContactStatus(c.DefaultQuery("status", string(domain.ContactOpen)))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	list, total, err := h.service.ListByStatus(c.Request.Context(), status, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list messages")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"messages": list, "total": total})
}

func (h *Handler) GetThread(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	thread, svcErr := h.service.GetThread(c.Request.Context(), id)
	if svcErr != nil {
		if svcErr == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Message not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load thread")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"thread": thread})
}

type replyRequest struct {
	Body string `json:"body" binding:"required"`
}

func (h *Handler) Reply(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	reply, svcErr := h.service.Reply(c.Request.Context(), id, c.GetInt64("user_id"), req.Body)
	if svcErr != nil {
		switch svcErr {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Message not found")
		case ErrClosed:
			response.Error(c, http.StatusConflict, "THREAD_CLOSED", "Thread is already closed")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Reply body is required")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reply")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"reply": reply})
}

func (h *Handler) Close(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	if err := h.service.Close(c.Request.Context(), id); err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Message not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to close thread")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "closed"})
}
