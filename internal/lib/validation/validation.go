// Package validation собирает настроенный валидатор входных DTO.
package validation

import (
	"time"

	"github.com/go-playground/validator"
)

// New возвращает валидатор с зарегистрированным правилом datetime:
// значение поля должно разбираться по формату из параметра тега.
// Встроенного правила datetime в validator v9 нет.
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("datetime", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(fl.Param(), fl.Field().String())
		return err == nil
	})
	return v
}
