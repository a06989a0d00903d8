package service

import "fmt"

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
}

func (b *BusinessError) Error() string {
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("Неверное значение поля '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

func NewOutOfRangeError(index int) *BusinessError {
	return &BusinessError{
		Code:    "OUT_OF_RANGE",
		Message: fmt.Sprintf("Позиция %d вне пользовательского порядка", index),
		Details: map[string]any{
			"index": index,
		},
	}
}
