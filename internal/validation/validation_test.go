package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/galeria-api/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	ID    int64  `param:"id" json:"-" validate:"required,min=1"`
	Link  string `json:"link_imagem" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

func (p *samplePayload) Validate() error {
	return Struct(p)
}

func (p *samplePayload) FieldMessages() map[string]string {
	return map[string]string{
		"link_imagem.required": "O campo contendo o link da imagem é obrigatório",
	}
}

func newContext(t *testing.T, method, body, id string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/imagens/"+id, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/imagens/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestBindAndValidate_Success(t *testing.T) {
	c := newContext(t, http.MethodPut, `{"link_imagem":"http://x/1.png"}`, "7")

	var p samplePayload
	require.NoError(t, BindAndValidate(c, &p))
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "http://x/1.png", p.Link)
}

func TestBindAndValidate_RequiredUsesOverride(t *testing.T) {
	c := newContext(t, http.MethodPut, `{}`, "1")

	httpErr := requireHTTPError(t, BindAndValidate(c, &samplePayload{}))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, errs.LabelInvalidData, httpErr.Erro)
	assert.Equal(t, "O campo contendo o link da imagem é obrigatório", httpErr.Mensagem)
	require.Len(t, httpErr.Campos, 1)
	assert.Equal(t, "link_imagem", httpErr.Campos[0].Field)
}

func TestBindAndValidate_DefaultMessageUsesJSONName(t *testing.T) {
	c := newContext(t, http.MethodPut, `{"link_imagem":"x","email":"nope"}`, "1")

	httpErr := requireHTTPError(t, BindAndValidate(c, &samplePayload{}))
	assert.Equal(t, "O campo email deve ser um email válido", httpErr.Mensagem)
}

func TestBindAndValidate_NonNumericID(t *testing.T) {
	c := newContext(t, http.MethodGet, "", "abc")

	httpErr := requireHTTPError(t, BindAndValidate(c, &samplePayload{}))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "O parâmetro id é inválido", httpErr.Mensagem)
}

func TestBindAndValidate_NonPositiveID(t *testing.T) {
	c := newContext(t, http.MethodPut, `{"link_imagem":"x"}`, "0")

	httpErr := requireHTTPError(t, BindAndValidate(c, &samplePayload{}))
	require.NotEmpty(t, httpErr.Campos)
	assert.Equal(t, "id", httpErr.Campos[0].Field)
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	c := newContext(t, http.MethodPut, `{"link_imagem":`, "1")

	httpErr := requireHTTPError(t, BindAndValidate(c, &samplePayload{}))
	assert.Equal(t, "Corpo da requisição inválido", httpErr.Mensagem)
}

type customPayload struct{}

func (customPayload) Validate() error {
	return CustomValidationErrors{{Field: "senha", Message: "A senha não pode ser vazia"}}
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	c := newContext(t, http.MethodPut, `{}`, "1")

	httpErr := requireHTTPError(t, BindAndValidate(c, &customPayload{}))
	assert.Equal(t, "A senha não pode ser vazia", httpErr.Mensagem)
	assert.Equal(t, []errs.FieldError{{Field: "senha", Error: "A senha não pode ser vazia"}}, httpErr.Campos)
}
