package errs

import "strings"

// FieldError represents a field-level validation error.
//
//	{ "campo": "link_imagem", "erro": "O campo contendo o link da imagem é obrigatório" }
type FieldError struct {
	Field string `json:"campo"`
	Error string `json:"erro"`
}

// HTTPError is the custom error type for API responses.
//
// Code and Status drive logging and the response status line; only Erro,
// Mensagem and Campos reach the response body.
type HTTPError struct {
	// Erro is a short category label ("Dados inválidos", "Erro interno do servidor").
	Erro string `json:"erro,omitempty"`

	// Mensagem is the human readable, request-specific message.
	Mensagem string `json:"mensagem,omitempty"`

	// Campos holds field-level validation errors.
	Campos []FieldError `json:"campos,omitempty"`

	// Code is a machine-friendly code (e.g. "BAD_REQUEST", "ADMINISTRADOR_ALREADY_EXISTS").
	Code string `json:"-"`

	// Status is the HTTP status code.
	Status int `json:"-"`
}

// Error returns the most specific message available.
func (e *HTTPError) Error() string {
	if e.Mensagem != "" {
		return e.Mensagem
	}
	return e.Erro
}

// Is reports true for any *HTTPError target, so errors.Is(err, &HTTPError{})
// answers "is this an API error" regardless of its contents.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Mensagem replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Erro:     e.Erro,
		Mensagem: message,
		Campos:   e.Campos,
		Code:     e.Code,
		Status:   e.Status,
	}
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
