package common

import "net/http"

// Error codes returned to clients alongside the message.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeAlreadyCompleted   = "ALREADY_COMPLETED"
	CodeBadRequest         = "BAD_REQUEST"
	CodeSomethingWentWrong = "SOMETHING_WENT_WRONG"
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *AppError {
	if message == "" {
		message = "Resource not found"
	}
	return &AppError{Code: CodeNotFound, Message: message, Status: http.StatusNotFound}
}

func NewAlreadyCompletedError(message string) *AppError {
	if message == "" {
		message = "Stage already completed"
	}
	return &AppError{Code: CodeAlreadyCompleted, Message: message, Status: http.StatusConflict}
}

func NewBadRequestError(message string) *AppError {
	if message == "" {
		message = "Invalid request"
	}
	return &AppError{Code: CodeBadRequest, Message: message, Status: http.StatusBadRequest}
}

func NewSomethingWentWrongError(message string) *AppError {
	if message == "" {
		message = "Something went wrong"
	}
	return &AppError{Code: CodeSomethingWentWrong, Message: message, Status: http.StatusInternalServerError}
}

// AsAppError wraps unexpected errors (persistence failures and the like) so
// handlers never leak raw driver errors to clients.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewSomethingWentWrongError("")
}
