package remove

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

	"github.com/webrise/subscription-service/internal/storage/repository"
)

// MockService реализует интерфейс remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestRemoveProviderHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		providerID     string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:       "успешное удаление провайдера",
			providerID: "7",
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, int64(7)).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"Subscription provider was successfully deleted"`,
		},
		{
			name:           "некорректный id в url",
			providerID:     "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"failed to decode id from url"`,
		},
		{
			name:       "провайдер не найден",
			providerID: "99",
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, int64(99)).
					Return(repository.ErrProviderNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"message":"subscription provider with that id was not found"`,
		},
		{
			name:       "на провайдера ещё есть подписки",
			providerID: "7",
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, int64(7)).
					Return(repository.ErrProviderHasSubscriptions)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"subscription provider is still referenced by subscriptions"`,
		},
		{
			name:       "ошибка сервиса",
			providerID: "7",
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, int64(7)).
					Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"message":"could not delete subscription provider"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, "/subscription-provider/"+tt.providerID, nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.providerID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
