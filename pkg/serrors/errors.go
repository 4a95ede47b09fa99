package serrors

import "fmt"

// BaseError is a coded error. Controllers map the code to an HTTP status and
// echo it in the error envelope.
type BaseError struct {
	Code    string
	Message string
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

func NewValidationError(field, message string) *BaseError {
	return &BaseError{
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("%s: %s", field, message),
	}
}
