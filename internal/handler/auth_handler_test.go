package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"synergysphere/internal/handler"
	"synergysphere/internal/logger"
	"synergysphere/internal/middleware"
	"synergysphere/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthAPI(store storage.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	log := logger.New("handler-test")

	authHandler := handler.NewAuthHandler(store, "test-secret-key", 24*time.Hour, false, log)

	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)
	r.POST("/api/auth/logout", authHandler.Logout)
	r.GET("/api/auth/me", middleware.JWTAuthMiddleware("test-secret-key"), authHandler.Me)

	return r
}

func registerBody() gin.H {
	return gin.H{
		"firstName": "Test",
		"lastName":  "User",
		"email":     "test@example.com",
		"password":  "password123",
	}
}

func TestRegister_Success(t *testing.T) {
	// Arrange
	router := setupAuthAPI(storage.NewMemoryStore())

	// Act
	resp := performJSON(router, "POST", "/api/auth/register", registerBody())

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)

	var response struct {
		Message string `json:"message"`
		User    struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, "User created successfully", response.Message)
	assert.NotEmpty(t, response.User.ID)
	assert.Equal(t, "test@example.com", response.User.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	// Arrange
	router := setupAuthAPI(storage.NewMemoryStore())
	require.Equal(t, http.StatusCreated, performJSON(router, "POST", "/api/auth/register", registerBody()).Code)

	// Act
	resp := performJSON(router, "POST", "/api/auth/register", registerBody())

	// Assert
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Contains(t, resp.Body.String(), "User already exists with this email")
}

func TestRegister_MissingFields(t *testing.T) {
	// Arrange
	router := setupAuthAPI(storage.NewMemoryStore())

	// Act
	resp := performJSON(router, "POST", "/api/auth/register", gin.H{"email": "test@example.com"})

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "All fields are required")
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	// Arrange
	router := setupAuthAPI(storage.NewMemoryStore())
	require.Equal(t, http.StatusCreated, performJSON(router, "POST", "/api/auth/register", registerBody()).Code)

	// Act: email matching is case-insensitive
	resp := performJSON(router, "POST", "/api/auth/login", gin.H{
		"email":    "Test@Example.com",
		"password": "password123",
	})

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Login successful")

	cookies := resp.Result().Cookies()
	var sessionCookie *http.Cookie
	for _, cookie := range cookies {
		if cookie.Name == middleware.AuthCookieName {
			sessionCookie = cookie
		}
	}
	require.NotNil(t, sessionCookie)
	assert.NotEmpty(t, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
}

func TestLogin_WrongPassword(t *testing.T) {
	// Arrange
	router := setupAuthAPI(storage.NewMemoryStore())
	require.Equal(t, http.StatusCreated, performJSON(router, "POST", "/api/auth/register", registerBody()).Code)

	// Act
	resp := performJSON(router, "POST", "/api/auth/login", gin.H{
		"email":    "test@example.com",
		"password": "wrong-password",
	})

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid credentials")
}

func TestLogin_UnknownEmail(t *testing.T) {
	// Arrange
	router := setupAuthAPI(storage.NewMemoryStore())

	// Act
	resp := performJSON(router, "POST", "/api/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "password123",
	})

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid credentials")
}

func TestMe_WithSessionCookie(t *testing.T) {
	// Arrange
	store := storage.NewMemoryStore()
	router := setupAuthAPI(store)
	require.Equal(t, http.StatusCreated, performJSON(router, "POST", "/api/auth/register", registerBody()).Code)

	login := performJSON(router, "POST", "/api/auth/login", gin.H{
		"email":    "test@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, login.Code)

	req, _ := http.NewRequest("GET", "/api/auth/me", nil)
	for _, cookie := range login.Result().Cookies() {
		req.AddCookie(cookie)
	}

	// Act
	resp := performRequest(router, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "test@example.com")
	assert.NotContains(t, resp.Body.String(), "password")
}

func TestMe_Unauthenticated(t *testing.T) {
	// Arrange
	router := setupAuthAPI(storage.NewMemoryStore())

	req, _ := http.NewRequest("GET", "/api/auth/me", nil)

	// Act
	resp := performRequest(router, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
