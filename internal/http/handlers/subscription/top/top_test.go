package top

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/webrise/subscription-service/internal/models"
	"github.com/webrise/subscription-service/internal/storage/repository"
)

// MockService реализует интерфейс top.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Top(ctx context.Context, limit int) ([]*models.ProviderStats, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProviderStats), args.Error(1)
}

func TestTopProvidersHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	stats := []*models.ProviderStats{
		{ProviderName: "Netflix", SubscriptionCount: 12},
		{ProviderName: "Spotify", SubscriptionCount: 7},
	}

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "рейтинг с лимитом по умолчанию",
			url:  "/subscriptions/top",
			setupMock: func(m *MockService) {
				m.On("Top", mock.Anything, 3).Return(stats, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"provider_name":"Netflix"`,
		},
		{
			name: "явный limit из запроса",
			url:  "/subscriptions/top?limit=10",
			setupMock: func(m *MockService) {
				m.On("Top", mock.Anything, 10).Return(stats, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"subscription_count":12`,
		},
		{
			name:           "limit не число",
			url:            "/subscriptions/top?limit=abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"failed to decode limit from query"`,
		},
		{
			name:           "limit меньше единицы",
			url:            "/subscriptions/top?limit=0",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"limit cannot be less than 1"`,
		},
		{
			name:           "отрицательный limit",
			url:            "/subscriptions/top?limit=-5",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"limit cannot be less than 1"`,
		},
		{
			name: "активных подписок нет",
			url:  "/subscriptions/top",
			setupMock: func(m *MockService) {
				m.On("Top", mock.Anything, 3).
					Return(nil, repository.ErrSubscriptionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"message":"no subscriptions was found for this user"`,
		},
		{
			name: "ошибка сервиса",
			url:  "/subscriptions/top",
			setupMock: func(m *MockService) {
				m.On("Top", mock.Anything, 3).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"message":"could not get top providers"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
