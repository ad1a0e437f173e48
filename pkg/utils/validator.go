package utils

import "github.com/go-playground/validator/v10"

// EchoValidator адаптирует go-playground/validator под интерфейс echo.Validator.
type EchoValidator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *EchoValidator {
	return &EchoValidator{validator: v}
}

func (v *EchoValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}
