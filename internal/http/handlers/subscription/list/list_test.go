package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/webrise/subscription-service/internal/models"
	"github.com/webrise/subscription-service/internal/storage/repository"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ListByUser(ctx context.Context, userID int64) ([]models.SubscriptionView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SubscriptionView), args.Error(1)
}

func TestListSubscriptionsHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		userID         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "активные подписки пользователя",
			userID: "3",
			setupMock: func(m *MockService) {
				m.On("ListByUser", mock.Anything, int64(3)).Return([]models.SubscriptionView{
					{
						ID:        10,
						StartDate: "2026-01-01 00:00:00",
						Active:    true,
						UserID:    3,
						Provider:  models.Provider{ID: 5, Name: "Netflix", Price: 599},
					},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"Netflix"`,
		},
		{
			name:   "пользователь без подписок получает пустой список",
			userID: "3",
			setupMock: func(m *MockService) {
				m.On("ListByUser", mock.Anything, int64(3)).
					Return([]models.SubscriptionView{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name:           "некорректный id в url",
			userID:         "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"failed to decode id from url"`,
		},
		{
			name:   "пользователь не найден",
			userID: "99",
			setupMock: func(m *MockService) {
				m.On("ListByUser", mock.Anything, int64(99)).
					Return(nil, repository.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"message":"user with that id was not found"`,
		},
		{
			name:   "ошибка сервиса",
			userID: "3",
			setupMock: func(m *MockService) {
				m.On("ListByUser", mock.Anything, int64(3)).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"message":"could not list subscriptions"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.userID+"/subscriptions", nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("userId", tt.userID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
