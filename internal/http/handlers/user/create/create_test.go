package create

import (
	"bytes"
	"context"
	"encoding/json"
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

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req models.DummyUser) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func TestCreateUserHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validUser := models.DummyUser{
		Username: "john",
		Email:    "john@example.com",
		FullName: "John Doe",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное создание пользователя",
			requestBody: validUser,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.AnythingOfType("models.DummyUser")).
					Return(int64(1), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"User was successfully added"`,
		},
		{
			name: "создание с начальной подпиской",
			requestBody: models.DummyUser{
				Username: "john",
				Email:    "john@example.com",
				Subscriptions: []models.DummySubscription{
					{StartDate: "2026-01-01 00:00:00", ProviderID: 5},
				},
			},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.AnythingOfType("models.DummyUser")).
					Return(int64(2), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"2"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"invalid request body"`,
		},
		{
			name: "ошибка валидации обязательных полей",
			requestBody: models.DummyUser{
				Username: "",
				Email:    "",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Username is a required field, field Email is a required field`,
		},
		{
			name: "некорректная почта",
			requestBody: models.DummyUser{
				Username: "john",
				Email:    "not-an-email",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Email must be a valid email address`,
		},
		{
			name: "некорректная дата начальной подписки",
			requestBody: models.DummyUser{
				Username: "john",
				Email:    "john@example.com",
				Subscriptions: []models.DummySubscription{
					{StartDate: "01-01-2026", ProviderID: 5},
				},
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field StartDate`,
		},
		{
			name:        "имя пользователя занято",
			requestBody: validUser,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.AnythingOfType("models.DummyUser")).
					Return(int64(0), repository.ErrUsernameTaken)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"user with this username already exists"`,
		},
		{
			name:        "почта занята",
			requestBody: validUser,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.AnythingOfType("models.DummyUser")).
					Return(int64(0), repository.ErrEmailTaken)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"user with this email already exists"`,
		},
		{
			name: "повторный провайдер в начальных подписках",
			requestBody: models.DummyUser{
				Username: "john",
				Email:    "john@example.com",
				Subscriptions: []models.DummySubscription{
					{StartDate: "2026-01-01 00:00:00", ProviderID: 5},
					{StartDate: "2026-02-01 00:00:00", ProviderID: 5},
				},
			},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.AnythingOfType("models.DummyUser")).
					Return(int64(0), repository.ErrSubscriptionExists)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"this subscription already exists"`,
		},
		{
			name:        "провайдер начальной подписки не найден",
			requestBody: validUser,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.AnythingOfType("models.DummyUser")).
					Return(int64(0), repository.ErrProviderNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"message":"subscription provider with that id was not found"`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: validUser,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.AnythingOfType("models.DummyUser")).
					Return(int64(0), errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"message":"could not create user"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
