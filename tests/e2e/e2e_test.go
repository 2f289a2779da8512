package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"renthub/internal/database"
	"renthub/internal/middleware"
	"renthub/internal/modules/admin"
	"renthub/internal/modules/auth"
	"renthub/internal/modules/booking"
	"renthub/internal/modules/contact"
	"renthub/internal/modules/notification"
	"renthub/internal/modules/property"
	jwtsvc "renthub/internal/pkg/jwt"
	"renthub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type suite struct {
	router *gin.Engine
	db     *gorm.DB
}

type apiResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *errorDetail           `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupSuite(t *testing.T) *suite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, repository.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	contactRepo := repository.NewContactRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	hub := notification.NewHub()
	t.Cleanup(hub.Close)

	notifService := notification.NewService(notifRepo, hub, nil, nil)
	notifHandler := notification.NewHandler(notifService, hub, jwtService, nil)

	authService := auth.NewService(userRepo, jwtService)
	authHandler := auth.NewHandler(authService)

	propertyService := property.NewService(propertyRepo, nil, nil)
	propertyHandler := property.NewHandler(propertyService)

	bookingService := booking.NewService(bookingRepo, propertyRepo, notifService, nil, nil)
	bookingHandler := booking.NewHandler(bookingService)

	adminService := admin.NewService(propertyRepo, userRepo, bookingRepo, contactRepo, notifService, nil, nil)
	adminHandler := admin.NewHandler(adminService)

	contactService := contact.NewService(contactRepo, notifService, nil, nil)
	contactHandler := contact.NewHandler(contactService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	public := v1.Group("/")
	public.Use(middleware.OptionalAuth(jwtService))

	protected := v1.Group("/")
	protected.Use(middleware.JWTAuth(jwtService))

	authHandler.RegisterRoutes(public, protected)
	propertyHandler.RegisterPublicRoutes(public)
	contactHandler.RegisterPublicRoutes(public)
	bookingHandler.RegisterRoutes(protected)
	notifHandler.RegisterRoutes(protected)

	host := v1.Group("/host")
	host.Use(middleware.JWTAuth(jwtService), middleware.OwnerOnly())
	propertyHandler.RegisterOwnerRoutes(host)
	bookingHandler.RegisterOwnerRoutes(host)

	adm := v1.Group("/admin")
	adm.Use(middleware.JWTAuth(jwtService), middleware.AdminOnly())
	adminHandler.RegisterRoutes(adm)
	contactHandler.RegisterAdminRoutes(adm)

	return &suite{router: r, db: db}
}

func (s *suite) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp apiResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func (s *suite) register(t *testing.T, email, role string) string {
	t.Helper()

	w, resp := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Test User",
		"email":    email,
		"password": "secret123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return resp.Data["token"].(string)
}

// registerAdmin promotes a registered user directly in the database;
// admins cannot self-register through the API.
func (s *suite) registerAdmin(t *testing.T, email string) string {
	t.Helper()

	s.register(t, email, "renter")
	require.NoError(t, s.db.Exec("UPDATE users SET role = 'admin' WHERE email = ?", email).Error)

	w, resp := s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	return resp.Data["token"].(string)
}

func (s *suite) createApprovedProperty(t *testing.T, ownerToken, adminToken string) float64 {
	t.Helper()

	w, resp := s.do(t, http.MethodPost, "/api/v1/host/properties", ownerToken, gin.H{
		"title":         "Loft on Abay",
		"city":          "Almaty",
		"nightly_price": 15000,
		"photos":        []string{"https://cdn.renthub.kz/p/1/main.jpg"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	propID := resp.Data["property"].(map[string]interface{})["id"].(float64)

	w, _ = s.do(t, http.MethodPatch,
		fmt.Sprintf("/api/v1/admin/properties/%.0f/approve", propID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	return propID
}

func futureRange(nights int) (string, string) {
	start := time.Now().AddDate(0, 1, 0)
	return start.Format("2006-01-02"), start.AddDate(0, 0, nights).Format("2006-01-02")
}

func TestFullBookingFlow(t *testing.T) {
	s := setupSuite(t)

	ownerToken := s.register(t, "owner@test.kz", "owner")
	renterToken := s.register(t, "renter@test.kz", "renter")
	adminToken := s.registerAdmin(t, "admin@test.kz")

	propID := s.createApprovedProperty(t, ownerToken, adminToken)

	// property is publicly visible once approved
	w, resp := s.do(t, http.MethodGet, "/api/v1/properties", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp.Data["total"])

	// renter books it
	start, end := futureRange(3)
	w, resp = s.do(t, http.MethodPost, "/api/v1/bookings", renterToken, gin.H{
		"property_id": propID,
		"start_date":  start,
		"end_date":    end,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bk := resp.Data["booking"].(map[string]interface{})
	bookingID := bk["id"].(float64)
	assert.Equal(t, "pending", bk["status"])
	assert.Equal(t, float64(45000), bk["total_price"])

	// owner got a request notification
	w, resp = s.do(t, http.MethodGet, "/api/v1/notifications", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp.Data["unread_count"])

	// owner approves
	w, resp = s.do(t, http.MethodPatch,
		fmt.Sprintf("/api/v1/host/bookings/%.0f/approve", bookingID), ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "approved", resp.Data["booking"].(map[string]interface{})["status"])

	// second approve reports the state conflict
	w, resp = s.do(t, http.MethodPatch,
		fmt.Sprintf("/api/v1/host/bookings/%.0f/approve", bookingID), ownerToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Booking is already approved.", resp.Error.Message)

	// renter got the approval notification
	w, resp = s.do(t, http.MethodGet, "/api/v1/notifications", renterToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := resp.Data["notifications"].([]interface{})
	require.NotEmpty(t, list)
	assert.Equal(t, "Booking Approved!", list[0].(map[string]interface{})["title"])

	// overlapping booking is refused
	w, resp = s.do(t, http.MethodPost, "/api/v1/bookings", renterToken, gin.H{
		"property_id": propID,
		"start_date":  start,
		"end_date":    end,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "BOOKING_CONFLICT", resp.Error.Code)

	// renter cancels their approved booking
	w, resp = s.do(t, http.MethodPatch,
		fmt.Sprintf("/api/v1/bookings/%.0f/cancel", bookingID), renterToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "cancelled", resp.Data["booking"].(map[string]interface{})["status"])

	// cancelling again reports the terminal state
	w, resp = s.do(t, http.MethodPatch,
		fmt.Sprintf("/api/v1/bookings/%.0f/cancel", bookingID), renterToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Booking is already cancelled", resp.Error.Message)
}

func TestBookingPermissions(t *testing.T) {
	s := setupSuite(t)

	ownerToken := s.register(t, "owner@test.kz", "owner")
	intruderToken := s.register(t, "intruder@test.kz", "owner")
	renterToken := s.register(t, "renter@test.kz", "renter")
	adminToken := s.registerAdmin(t, "admin@test.kz")

	propID := s.createApprovedProperty(t, ownerToken, adminToken)

	start, end := futureRange(2)
	w, resp := s.do(t, http.MethodPost, "/api/v1/bookings", renterToken, gin.H{
		"property_id": propID,
		"start_date":  start,
		"end_date":    end,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := resp.Data["booking"].(map[string]interface{})["id"].(float64)

	// a different owner cannot approve it
	w, resp = s.do(t, http.MethodPatch,
		fmt.Sprintf("/api/v1/host/bookings/%.0f/approve", bookingID), intruderToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Booking not found or you don't have permission", resp.Error.Message)

	// a renter cannot reach owner endpoints at all
	w, _ = s.do(t, http.MethodPatch,
		fmt.Sprintf("/api/v1/host/bookings/%.0f/approve", bookingID), renterToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestContactTriageFlow(t *testing.T) {
	s := setupSuite(t)

	renterToken := s.register(t, "renter@test.kz", "renter")
	adminToken := s.registerAdmin(t, "admin@test.kz")

	// logged-in renter files a message
	w, resp := s.do(t, http.MethodPost, "/api/v1/contact", renterToken, gin.H{
		"name":    "Aizhan",
		"email":   "renter@test.kz",
		"subject": "Refund question",
		"body":    "How do refunds work?",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	msgID := resp.Data["message"].(map[string]interface{})["id"].(float64)

	// admin sees it in the open queue
	w, resp = s.do(t, http.MethodGet, "/api/v1/admin/messages?status=open", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp.Data["total"])

	// admin replies
	w, _ = s.do(t, http.MethodPost,
		fmt.Sprintf("/api/v1/admin/messages/%.0f/reply", msgID), adminToken, gin.H{
			"body": "Refunds are issued within 5 days.",
		})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// renter got a notification about the reply
	w, resp = s.do(t, http.MethodGet, "/api/v1/notifications", renterToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := resp.Data["notifications"].([]interface{})
	require.NotEmpty(t, list)
	assert.Equal(t, "contact_reply", list[0].(map[string]interface{})["type"])

	// closing ends the thread
	w, _ = s.do(t, http.MethodPatch,
		fmt.Sprintf("/api/v1/admin/messages/%.0f/close", msgID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = s.do(t, http.MethodPost,
		fmt.Sprintf("/api/v1/admin/messages/%.0f/reply", msgID), adminToken, gin.H{
			"body": "one more thing",
		})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "THREAD_CLOSED", resp.Error.Code)
}
