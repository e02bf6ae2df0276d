package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"synergysphere/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPVerifier_TokenSentInBodyNotURL(t *testing.T) {
	// Arrange
	var gotQuery, gotBody, gotContentType, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		gotContentType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{"sub": "ext-user-1", "sid": "sess-1"})
	}))
	defer server.Close()

	verifier := auth.NewHTTPVerifier(server.URL, "secret-key")

	// Act
	identity, err := verifier.Verify(context.Background(), "session-token")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ext-user-1", identity.UserID)
	assert.Equal(t, "sess-1", identity.SessionID)

	assert.Empty(t, gotQuery)
	form, err := url.ParseQuery(gotBody)
	require.NoError(t, err)
	assert.Equal(t, "session-token", form.Get("token"))
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "Bearer secret-key", gotAuth)
}

func TestHTTPVerifier_RejectedToken(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	verifier := auth.NewHTTPVerifier(server.URL, "secret-key")

	// Act
	identity, err := verifier.Verify(context.Background(), "bad-token")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, identity)
}

func TestHTTPVerifier_MissingSubject(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"sid": "sess-1"})
	}))
	defer server.Close()

	verifier := auth.NewHTTPVerifier(server.URL, "secret-key")

	// Act
	identity, err := verifier.Verify(context.Background(), "token")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, identity)
}
