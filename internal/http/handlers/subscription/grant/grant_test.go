package grant

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/daily-lens/internal/models"
	"github.com/magabrotheeeer/daily-lens/internal/services/subscription"
)

type MockService struct{ mock.Mock }

func (m *MockService) Grant(ctx context.Context, email, period string, price float64) (subscription.GrantResult, error) {
	args := m.Called(ctx, email, period, price)
	return args.Get(0).(subscription.GrantResult), args.Error(1)
}

func TestGrantHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	expiry := time.Date(2024, 1, 6, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная выдача",
			body: `{"subscriptionInfo":{"period":"5days","price":5}}`,
			setupMock: func(m *MockService) {
				m.On("Grant", mock.Anything, "a@x.io", "5days", 5.0).
					Return(subscription.GrantResult{Updated: true, Expiry: expiry}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"modified":1`,
		},
		{
			name: "неизвестный тариф",
			body: `{"subscriptionInfo":{"period":"bogus","price":5}}`,
			setupMock: func(m *MockService) {
				m.On("Grant", mock.Anything, "a@x.io", "bogus", 5.0).
					Return(subscription.GrantResult{}, models.ErrRejectedPlan)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"Invalid subscription period"}`,
		},
		{
			name: "пользователь не найден",
			body: `{"subscriptionInfo":{"period":"5days","price":5}}`,
			setupMock: func(m *MockService) {
				m.On("Grant", mock.Anything, "a@x.io", "5days", 5.0).
					Return(subscription.GrantResult{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"nothing to update"`,
		},
		{
			name:           "нулевая цена",
			body:           `{"subscriptionInfo":{"period":"5days","price":0}}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Price must be greater than 0`,
		},
		{
			name: "пустой тариф",
			body: `{"subscriptionInfo":{"price":5}}`,
			setupMock: func(m *MockService) {
				m.On("Grant", mock.Anything, "a@x.io", "", 5.0).
					Return(subscription.GrantResult{}, models.ErrRejectedPlan)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"Invalid subscription period"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockService)
			tt.setupMock(m)

			r := chi.NewRouter()
			r.Patch("/userSubscriptionInfo/{email}", New(logger, m).ServeHTTP)

			req := httptest.NewRequest(http.MethodPatch, "/userSubscriptionInfo/a@x.io", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			m.AssertExpectations(t)
		})
	}
}
