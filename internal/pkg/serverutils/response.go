// FILE: internal/pkg/serverutils/response.go
package serverutils

type Response[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Status:  200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(status int, message string) Response[any] {
	return Response[any]{
		Status:  status,
		Message: message,
	}
}
