// FILE: internal/pkg/serverutils/response.go
package serverutils

type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

type APIError struct {
	Success bool     `json:"success"`
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) APIResponse[T] {
	return APIResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) APIError {
	return APIError{
		Code:    code,
		Message: message,
	}
}

// ValidationErrorResponse carries the ordered violation list from a draft
// validation pass alongside the usual envelope.
func ValidationErrorResponse(code int, message string, errs []string) APIError {
	return APIError{
		Code:    code,
		Message: message,
		Errors:  errs,
	}
}
