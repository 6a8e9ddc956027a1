package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("Adds CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("Handles preflight requests", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestBearerAuth(t *testing.T) {
	logger := zerolog.Nop()

	var captured string
	handler := BearerAuth(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _ := TokenFromContext(r.Context())
		captured = token
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name           string
		path           string
		authHeader     string
		expectedStatus int
		expectedToken  string
	}{
		{
			name:           "Valid bearer token",
			path:           "/api/cart",
			authHeader:     "Bearer retailer-token-123",
			expectedStatus: http.StatusOK,
			expectedToken:  "retailer-token-123",
		},
		{
			name:           "Missing authorization header",
			path:           "/api/cart",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Malformed authorization header",
			path:           "/api/cart",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Empty bearer token",
			path:           "/api/cart",
			authHeader:     "Bearer ",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Health endpoint skips auth",
			path:           "/health",
			authHeader:     "",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Metrics endpoint skips auth",
			path:           "/metrics",
			authHeader:     "",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captured = ""
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedToken != "" {
				assert.Equal(t, tt.expectedToken, captured)
			}
		})
	}
}

func TestTokenFromContext(t *testing.T) {
	t.Run("No token in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		token, ok := TokenFromContext(req.Context())

		assert.False(t, ok)
		assert.Empty(t, token)
	})
}

func TestLogging(t *testing.T) {
	logger := zerolog.Nop()

	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	// The wrapped status must pass through untouched.
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRecovery(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Recovers from panic", func(t *testing.T) {
		handler := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("something went wrong")
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		rec := httptest.NewRecorder()

		require.NotPanics(t, func() {
			handler.ServeHTTP(rec, req)
		})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error": "internal server error"}`, rec.Body.String())
	})

	t.Run("Passes through without panic", func(t *testing.T) {
		handler := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
