package read

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

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Get(ctx context.Context, id int64) (*models.UserView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserView), args.Error(1)
}

func TestReadUserHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	userView := &models.UserView{
		ID:        3,
		Username:  "john",
		Email:     "john@example.com",
		CreatedAt: "2026-08-30 12:00:00",
		UpdatedAt: "2026-08-30 12:00:00",
		Subscriptions: []models.SubscriptionView{
			{
				ID:        10,
				StartDate: "2026-01-01 00:00:00",
				Active:    true,
				UserID:    3,
				Provider:  models.Provider{ID: 5, Name: "Netflix", Price: 599},
			},
		},
	}

	tests := []struct {
		name           string
		userID         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "успешное чтение пользователя с подписками",
			userID: "3",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, int64(3)).Return(userView, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"john"`,
		},
		{
			name:   "пользователь без подписок получает пустой список",
			userID: "3",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, int64(3)).Return(&models.UserView{
					ID:            3,
					Username:      "john",
					Email:         "john@example.com",
					CreatedAt:     "2026-08-30 12:00:00",
					UpdatedAt:     "2026-08-30 12:00:00",
					Subscriptions: []models.SubscriptionView{},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"subscriptions":[]`,
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
				m.On("Get", mock.Anything, int64(99)).
					Return(nil, repository.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"message":"user with that id was not found"`,
		},
		{
			name:   "ошибка сервиса",
			userID: "3",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, int64(3)).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"message":"could not read user"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.userID, nil)
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
