package middlewarectx_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/daily-lens/internal/http/middlewarectx"
	"github.com/magabrotheeeer/daily-lens/internal/lib/jwt"
	"github.com/magabrotheeeer/daily-lens/internal/models"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	maker := jwt.NewJWTMaker("secret", time.Hour).WithClock(func() time.Time { return now })

	valid, err := maker.GenerateToken(models.Identity{Email: "a@x.io"})
	require.NoError(t, err)

	expiredMaker := jwt.NewJWTMaker("secret", time.Hour).WithClock(func() time.Time { return now.Add(-2 * time.Hour) })
	expired, err := expiredMaker.GenerateToken(models.Identity{Email: "a@x.io"})
	require.NoError(t, err)

	foreign, err := jwt.NewJWTMaker("other", time.Hour).WithClock(func() time.Time { return now }).
		GenerateToken(models.Identity{Email: "a@x.io"})
	require.NoError(t, err)

	var got models.Identity
	handlerCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		got, _ = middlewarectx.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	mw := middlewarectx.JWTMiddleware(maker, newNoopLogger())(next)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantBody   string
		wantCalled bool
	}{
		{"missing header", "", http.StatusUnauthorized, "missing or invalid authorization header", false},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "missing or invalid authorization header", false},
		{"empty token", "Bearer ", http.StatusUnauthorized, "missing or invalid authorization header", false},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized, "invalid token", false},
		{"foreign key", "Bearer " + foreign, http.StatusUnauthorized, "invalid token", false},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized, "token expired", false},
		{"valid token", "Bearer " + valid, http.StatusOK, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled = false
			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			if tt.wantCalled {
				assert.Equal(t, "a@x.io", got.Email)
			}
		})
	}
}

func TestIdentityFromContext(t *testing.T) {
	_, ok := middlewarectx.IdentityFromContext(context.Background())
	assert.False(t, ok)

	ctx := middlewarectx.WithIdentity(context.Background(), models.Identity{Email: "a@x.io"})
	id, ok := middlewarectx.IdentityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "a@x.io", id.Email)
}
