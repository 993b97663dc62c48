package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"socialbook/internal/model"
	"socialbook/internal/service"
	"socialbook/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

// stubAuthService returns canned results so handler tests exercise only
// the HTTP boundary.
type stubAuthService struct {
	tokens *util.TokenPair
	err    error
}

func (s *stubAuthService) Register(req service.RegisterRequest) (*util.TokenPair, error) {
	return s.tokens, s.err
}

func (s *stubAuthService) Login(req service.LoginRequest) (*util.TokenPair, error) {
	return s.tokens, s.err
}

func (s *stubAuthService) RefreshToken(refreshToken string) (*util.TokenPair, error) {
	return s.tokens, s.err
}

func (s *stubAuthService) SearchUsers(keyword string) ([]model.UserResponse, error) {
	return nil, s.err
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) util.Response {
	t.Helper()
	var resp util.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRegisterEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := &util.TokenPair{Access: "a", Refresh: "r", Email: "alice@example.com"}
	handler := NewAuthHandler(&stubAuthService{tokens: tokens}, testSecret)

	router := gin.New()
	router.POST("/register", handler.Register)

	rec := postJSON(t, router, "/register", map[string]interface{}{
		"email":     "alice@example.com",
		"name":      "Alice",
		"tc":        true,
		"password":  "password123",
		"password2": "password123",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)
}

func TestRegisterEndpointInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(&stubAuthService{}, testSecret)

	router := gin.New()
	router.POST("/register", handler.Register)

	rec := postJSON(t, router, "/register", map[string]interface{}{
		"email":     "not-an-email",
		"name":      "Alice",
		"password":  "password123",
		"password2": "password123",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "A valid email is required", resp.Message)
}

func TestRegisterEndpointShortPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(&stubAuthService{}, testSecret)

	router := gin.New()
	router.POST("/register", handler.Register)

	rec := postJSON(t, router, "/register", map[string]interface{}{
		"email":     "alice@example.com",
		"name":      "Alice",
		"password":  "short",
		"password2": "short",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "Password must be at least 8 characters", resp.Message)
}

func TestLoginEndpointFailureIs401(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(&stubAuthService{err: service.ErrInvalidCredentials}, testSecret)

	router := gin.New()
	router.POST("/login", handler.Login)

	rec := postJSON(t, router, "/login", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "wrongpassword",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "non_field_errors")
}

func TestLoginEndpointInternalErrorIs500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(&stubAuthService{err: errors.New("token signing failed")}, testSecret)

	router := gin.New()
	router.POST("/login", handler.Login)

	rec := postJSON(t, router, "/login", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "non_field_errors")
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(&stubAuthService{}, testSecret)

	router := gin.New()
	router.GET("/protected", handler.AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("userID")})
	})

	// Missing header
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Malformed header
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token
	pair, err := util.GenerateTokenPair("user-1", "alice@example.com", false, testSecret)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.Access)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "user-1")

	// Refresh token must not authenticate a request
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.Refresh)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
