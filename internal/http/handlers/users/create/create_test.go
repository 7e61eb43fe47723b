package create

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/daily-lens/internal/models"
)

type MockService struct{ mock.Mock }

func (m *MockService) Create(ctx context.Context, req models.DummyAccount) (bool, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "новый пользователь",
			body: `{"email":"a@x.io","name":"Ann"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, models.DummyAccount{Email: "a@x.io", Name: "Ann"}).Return(true, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"created":true`,
		},
		{
			name: "пользователь уже существует",
			body: `{"email":"a@x.io"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, models.DummyAccount{Email: "a@x.io"}).Return(false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"user already exists"`,
		},
		{
			name:           "нет email",
			body:           `{"name":"Ann"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Email is a required field`,
		},
		{
			name: "хранилище недоступно",
			body: `{"email":"a@x.io"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return(false, models.ErrStoreUnavailable)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `service temporarily unavailable`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockService)
			tt.setupMock(m)

			req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			New(logger, m).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			m.AssertExpectations(t)
		})
	}
}
