package middlewarectx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/daily-lens/internal/http/middlewarectx"
	"github.com/magabrotheeeer/daily-lens/internal/metrics"
	"github.com/magabrotheeeer/daily-lens/internal/models"
)

type CheckerMock struct{ mock.Mock }

func (m *CheckerMock) Admin(ctx context.Context, identity models.Identity) error {
	return m.Called(ctx, identity).Error(0)
}
func (m *CheckerMock) ActivePremium(ctx context.Context, identity models.Identity) error {
	return m.Called(ctx, identity).Error(0)
}

// withIdentity подставляет пользователя в контекст вместо JWTMiddleware.
func withIdentity(email string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if email != "" {
				r = r.WithContext(middlewarectx.WithIdentity(r.Context(), models.Identity{Email: email}))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func TestRequire(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		path       string
		setup      func(c *CheckerMock)
		wantStatus int
	}{
		{
			name:       "no identity",
			email:      "",
			path:       "/users/a@x.io",
			setup:      func(_ *CheckerMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "self mismatch stops before admin check",
			email:      "b@x.io",
			path:       "/users/a@x.io",
			setup:      func(_ *CheckerMock) {},
			wantStatus: http.StatusForbidden,
		},
		{
			name:  "not admin",
			email: "a@x.io",
			path:  "/users/a@x.io",
			setup: func(c *CheckerMock) {
				c.On("Admin", mock.Anything, models.Identity{Email: "a@x.io"}).Return(models.ErrForbidden)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:  "premium missing account",
			email: "a@x.io",
			path:  "/users/a@x.io",
			setup: func(c *CheckerMock) {
				c.On("Admin", mock.Anything, mock.Anything).Return(nil)
				c.On("ActivePremium", mock.Anything, mock.Anything).Return(models.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:  "percent-encoded email in path",
			email: "a@x.io",
			path:  "/users/a%40x.io",
			setup: func(c *CheckerMock) {
				c.On("Admin", mock.Anything, mock.Anything).Return(nil)
				c.On("ActivePremium", mock.Anything, mock.Anything).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "email in path differs in case",
			email: "a@x.io",
			path:  "/users/A@X.io",
			setup: func(c *CheckerMock) {
				c.On("Admin", mock.Anything, mock.Anything).Return(nil)
				c.On("ActivePremium", mock.Anything, mock.Anything).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "encoded foreign email",
			email:      "a@x.io",
			path:       "/users/b%40x.io",
			setup:      func(_ *CheckerMock) {},
			wantStatus: http.StatusForbidden,
		},
		{
			name:  "all pass",
			email: "a@x.io",
			path:  "/users/a@x.io",
			setup: func(c *CheckerMock) {
				c.On("Admin", mock.Anything, mock.Anything).Return(nil)
				c.On("ActivePremium", mock.Anything, mock.Anything).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := new(CheckerMock)
			tt.setup(c)
			m := metrics.New(prometheus.NewRegistry())

			r := chi.NewRouter()
			r.With(
				withIdentity(tt.email),
				middlewarectx.Require(newNoopLogger(), m,
					middlewarectx.Self("email"),
					middlewarectx.Admin(c),
					middlewarectx.ActivePremium(c),
				),
			).Get("/users/{email}", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			c.AssertExpectations(t)
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(0.001), 2)
	h := middlewarectx.RateLimitMiddleware(newNoopLogger(), limiter)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jwt", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
