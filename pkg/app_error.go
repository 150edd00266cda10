package pkg

import "github.com/gin-gonic/gin"

// AppError is the HTTP-facing error rendered by the handlers.
type AppError struct {
	Code       string
	Message    string
	Err        error
	HTTPStatus int
	Extra      map[string]any
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewDomainError(code, message string, err error, status int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: status}
}

func NewDomainErrorSimple(code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// With attaches an extra top-level field to the rendered body.
func (e *AppError) With(key string, value any) *AppError {
	if e.Extra == nil {
		e.Extra = map[string]any{}
	}
	e.Extra[key] = value
	return e
}

// ToHTTPError renders {"error": message, "code": code} plus any extra fields.
func (e *AppError) ToHTTPError() gin.H {
	body := gin.H{
		"error": e.Message,
		"code":  e.Code,
	}
	for k, v := range e.Extra {
		body[k] = v
	}
	return body
}
