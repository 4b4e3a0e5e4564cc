package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/AB-BookingService/internal/domain"
	"github.com/agendahub/AB-BookingService/pkg/authtoken"
)

func newTestManager() *authtoken.Manager {
	return authtoken.NewManager("test-secret", time.Hour)
}

func identityEcho(t *testing.T, got *Identity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		*got = identity
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := newTestManager()
	token, err := tokens.Create(42, string(domain.RoleClient), "client@example.com")
	require.NoError(t, err)

	var got Identity
	handler := Auth(tokens)(identityEcho(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, domain.RoleClient, got.Role)
	assert.Equal(t, "client@example.com", got.Email)
}

func TestAuth_MissingHeader(t *testing.T) {
	tokens := newTestManager()
	handler := Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	tokens := newTestManager()
	handler := Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{name: "garbage token", header: "Bearer not-a-token"},
		{name: "wrong scheme", header: "Basic abc123"},
		{name: "foreign signature", header: "Bearer " + foreignToken(t)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func foreignToken(t *testing.T) string {
	other := authtoken.NewManager("another-secret", time.Hour)
	token, err := other.Create(1, string(domain.RoleClient), "x@example.com")
	require.NoError(t, err)
	return token
}

func TestAuth_ExpiredToken(t *testing.T) {
	expired := authtoken.NewManager("test-secret", -time.Minute)
	token, err := expired.Create(42, string(domain.RoleClient), "client@example.com")
	require.NoError(t, err)

	handler := Auth(newTestManager())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	tokens := newTestManager()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Auth(tokens)(RequireAdmin(next))

	tests := []struct {
		name       string
		role       domain.UserRole
		wantStatus int
	}{
		{name: "admin passes", role: domain.RoleAdmin, wantStatus: http.StatusOK},
		{name: "client forbidden", role: domain.RoleClient, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tokens.Create(1, string(tt.role), "user@example.com")
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireAdmin_WithoutAuth(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
