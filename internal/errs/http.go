package errs

import (
	"net/http"
)

// Category labels written to the "erro" member of error bodies.
const (
	LabelInvalidData     = "Dados inválidos"
	LabelInternal        = "Erro interno do servidor"
	LabelUnauthorized    = "Não autorizado"
	LabelForbidden       = "Acesso negado"
	LabelTooManyRequests = "Muitas requisições"
)

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
func NewUnauthorizedError(message string) *HTTPError {
	return &HTTPError{
		Erro:     LabelUnauthorized,
		Mensagem: message,
		Code:     statusCode(http.StatusUnauthorized),
		Status:   http.StatusUnauthorized,
	}
}

// NewForbiddenError creates a 403 Forbidden HTTPError.
func NewForbiddenError(message string) *HTTPError {
	return &HTTPError{
		Erro:     LabelForbidden,
		Mensagem: message,
		Code:     statusCode(http.StatusForbidden),
		Status:   http.StatusForbidden,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code is optional; when nil the code defaults to "BAD_REQUEST".
// fields carries per-field validation errors and may be nil.
func NewBadRequestError(message string, code *string, fields []FieldError) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Erro:     LabelInvalidData,
		Mensagem: message,
		Campos:   fields,
		Code:     formattedCode,
		Status:   http.StatusBadRequest,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError. Its body carries only
// the message: {"mensagem": "..."}.
func NewNotFoundError(message string, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Mensagem: message,
		Code:     formattedCode,
		Status:   http.StatusNotFound,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Erro:     LabelTooManyRequests,
		Mensagem: message,
		Code:     statusCode(http.StatusTooManyRequests),
		Status:   http.StatusTooManyRequests,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The body is always the generic {"erro": "Erro interno do servidor"};
// the underlying cause is only logged.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Erro:   LabelInternal,
		Code:   statusCode(http.StatusInternalServerError),
		Status: http.StatusInternalServerError,
	}
}

// ValidationError converts a generic validation error into a 400 Bad Request HTTPError.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Falha na validação: "+err.Error(), nil, nil)
}
