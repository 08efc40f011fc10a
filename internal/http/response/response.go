// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, ошибок и сообщений валидации в едином формате.
package response

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/webrise/subscription-service/internal/models"
)

// OKResponse описывает успешный JSON‑ответ с сообщением
// и, для операций создания, идентификатором новой записи.
type OKResponse struct {
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

// ErrorResponse описывает JSON‑ответ с ошибкой.
// Поле Cause заполняется исходной ошибкой, когда она есть.
type ErrorResponse struct {
	Message   string `json:"message"`
	Cause     string `json:"cause,omitempty"`
	Timestamp string `json:"timestamp"`
}

// OK возвращает успешный ответ с сообщением.
func OK(message string) OKResponse {
	return OKResponse{
		Message: message,
	}
}

// OKWithID возвращает успешный ответ с идентификатором созданной записи.
func OKWithID(id int64, message string) OKResponse {
	return OKResponse{
		ID:      fmt.Sprintf("%d", id),
		Message: message,
	}
}

// Error возвращает ответ с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Message:   msg,
		Timestamp: time.Now().Format(models.DateTimeLayout),
	}
}

// ErrorWithCause возвращает ответ с сообщением и исходной ошибкой.
func ErrorWithCause(msg string, err error) ErrorResponse {
	return ErrorResponse{
		Message:   msg,
		Cause:     err.Error(),
		Timestamp: time.Now().Format(models.DateTimeLayout),
	}
}

// ValidationError формирует ответ на основе ошибок валидации. Все нарушения
// собираются в один человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s cannot be more than %s symbols", err.Field(), err.Param()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		case "datetime":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only date in format %s", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Error(strings.Join(errsMsgs, ", "))
}
