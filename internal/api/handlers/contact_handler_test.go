package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/api/middleware"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/models"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/ratelimit"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/repository"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubContactService returns a canned dispatch outcome: thank-you email
// delivered, lead notification failed.
type stubContactService struct {
	submitted *repository.Contact
}

func (s *stubContactService) Submit(_ context.Context, contact *repository.Contact) (*repository.Contact, service.EmailStatus, error) {
	contact.ID = "contact-1"
	contact.Status = "new"
	contact.Priority = "medium"
	contact.CreatedAt = time.Now()
	s.submitted = contact
	return contact, service.EmailStatus{
		UserEmail:  service.EmailOutcome{Success: true},
		AdminEmail: service.EmailOutcome{Success: false, Error: "smtp down"},
	}, nil
}

func (s *stubContactService) List(_ context.Context, _ repository.ContactFilter) ([]*repository.Contact, int, error) {
	return nil, 0, nil
}

func (s *stubContactService) Get(_ context.Context, _ string) (*repository.Contact, error) {
	return nil, service.ErrNotFound
}

func (s *stubContactService) Update(_ context.Context, _ string, _, _, _ string) (*repository.Contact, error) {
	return nil, service.ErrNotFound
}

func (s *stubContactService) Delete(_ context.Context, _ string) error {
	return service.ErrNotFound
}

func newContactRouter(t *testing.T) (*gin.Engine, *stubContactService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stub := &stubContactService{}
	h := &ContactHandler{contactService: stub}
	limiter := ratelimit.NewMemoryLimiter(3, time.Minute)

	r := gin.New()
	r.POST("/api/contact", middleware.RateLimit(limiter), h.Submit)
	return r, stub
}

func validBody() []byte {
	body, _ := json.Marshal(map[string]string{
		"name":        "Jamie Client",
		"email":       "jamie@example.com",
		"projectType": "website",
		"budget":      "10k-25k",
		"timeline":    "1-3-months",
		"message":     "We need a new marketing site before our launch.",
	})
	return body
}

func postContact(r *gin.Engine, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitContactEnvelope(t *testing.T) {
	r, stub := newContactRouter(t)

	w := postContact(r, validBody())
	require.Equal(t, http.StatusCreated, w.Code, "a failed admin email must not fail the submission")

	var envelope models.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)

	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	emailStatus, ok := data["emailStatus"].(map[string]interface{})
	require.True(t, ok)
	userEmail := emailStatus["userEmail"].(map[string]interface{})
	adminEmail := emailStatus["adminEmail"].(map[string]interface{})
	assert.Equal(t, true, userEmail["success"])
	assert.Equal(t, false, adminEmail["success"])

	require.NotNil(t, stub.submitted)
	assert.NotEmpty(t, stub.submitted.IPAddress)
}

func TestSubmitContactValidation(t *testing.T) {
	r, stub := newContactRouter(t)

	body, _ := json.Marshal(map[string]string{
		"name":  "J",
		"email": "not-an-email",
	})
	w := postContact(r, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, stub.submitted)

	var envelope models.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.NotNil(t, envelope.Errors)
}

func TestSubmitContactRateLimited(t *testing.T) {
	r, _ := newContactRouter(t)

	for i := 0; i < 3; i++ {
		w := postContact(r, validBody())
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := postContact(r, validBody())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var envelope models.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
}
