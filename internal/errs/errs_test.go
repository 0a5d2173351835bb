package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundError_Body(t *testing.T) {
	err := NewNotFoundError("Imagem não encontrada", nil)

	body, jerr := json.Marshal(err)
	require.NoError(t, jerr)

	assert.JSONEq(t, `{"mensagem":"Imagem não encontrada"}`, string(body))
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "NOT_FOUND", err.Code)
}

func TestInternalServerError_IsGeneric(t *testing.T) {
	err := NewInternalServerError()

	body, jerr := json.Marshal(err)
	require.NoError(t, jerr)

	assert.JSONEq(t, `{"erro":"Erro interno do servidor"}`, string(body))
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestBadRequestError_WithFields(t *testing.T) {
	code := "IMAGEM_INVALID"
	err := NewBadRequestError("O campo contendo o link da imagem é obrigatório", &code, []FieldError{
		{Field: "link_imagem", Error: "O campo contendo o link da imagem é obrigatório"},
	})

	body, jerr := json.Marshal(err)
	require.NoError(t, jerr)

	assert.JSONEq(t, `{
		"erro": "Dados inválidos",
		"mensagem": "O campo contendo o link da imagem é obrigatório",
		"campos": [{"campo": "link_imagem", "erro": "O campo contendo o link da imagem é obrigatório"}]
	}`, string(body))
	assert.Equal(t, "IMAGEM_INVALID", err.Code)
}

func TestHTTPError_ErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewNotFoundError("Contato não encontrado", nil))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.True(t, errors.Is(wrapped, &HTTPError{}))
	assert.Equal(t, "Contato não encontrado", wrapped.(interface{ Unwrap() error }).Unwrap().Error())
}

func TestWithMessage_Copies(t *testing.T) {
	base := NewTooManyRequestsError("a")
	copied := base.WithMessage("b")

	assert.Equal(t, "a", base.Mensagem)
	assert.Equal(t, "b", copied.Mensagem)
	assert.Equal(t, base.Status, copied.Status)
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "TOO_MANY_REQUESTS", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)))
}
