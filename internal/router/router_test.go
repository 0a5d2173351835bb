package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/galeria-api/internal/config"
	"github.com/deppfellow/galeria-api/internal/handler"
	"github.com/deppfellow/galeria-api/internal/middleware"
	"github.com/deppfellow/galeria-api/internal/model"
	"github.com/deppfellow/galeria-api/internal/server"
	"github.com/deppfellow/galeria-api/internal/service"
	"github.com/deppfellow/galeria-api/internal/service/servicetest"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	router *echo.Echo
	images *servicetest.ImageStore
	admins *servicetest.AdministratorStore
	contas *servicetest.ContactStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithConfig(t, func(*config.Config) {})
}

func newTestAppWithConfig(t *testing.T, configure func(*config.Config)) *testApp {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Observability = config.DefaultObservabilityConfig()
	configure(cfg)
	log := zerolog.Nop()
	s := &server.Server{Config: cfg, Logger: &log}

	app := &testApp{
		images: servicetest.NewImageStore(),
		admins: servicetest.NewAdministratorStore(),
		contas: servicetest.NewContactStore(),
	}

	services := &service.Services{
		Image:         service.NewImageService(s, app.images),
		Administrator: service.NewAdministratorService(s, app.admins),
		Contact:       service.NewContactService(s, app.contas),
	}

	app.router = NewRouter(s, handler.NewHandlers(s, services), middleware.NewMiddlewares(s))
	return app
}

func (a *testApp) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func TestImagens_CreateThenList(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/imagens", `{"link_imagem":"http://x/1.png"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"mensagem":"Imagem criada com sucesso!"}`, rec.Body.String())
	assert.Equal(t, "/imagens/1", rec.Header().Get(echo.HeaderLocation))

	rec = app.do(http.MethodGet, "/imagens", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"link_imagem":"http://x/1.png"}]`, rec.Body.String())

	rec = app.do(http.MethodGet, "/imagens/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"link_imagem":"http://x/1.png"}]`, rec.Body.String())
}

func TestListEmptyTables(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/imagens", "/administrador", "/contato"} {
		rec := app.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `[]`, rec.Body.String(), path)
	}
}

func TestImagens_GetMissing(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/imagens/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"mensagem":"Imagem não encontrada"}`, rec.Body.String())
}

func TestMissingIDsAreNotFoundAndDoNotMutate(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusCreated, app.do(http.MethodPost, "/contato",
		`{"instagram":"@g","facebook":"fb/g","whatsapp":"55","email":"g@g.com"}`).Code)

	cases := []struct {
		method, path, body, message string
	}{
		{http.MethodPut, "/imagens/7", `{"link_imagem":"x"}`, "Imagem não encontrada"},
		{http.MethodDelete, "/imagens/7", "", "Imagem não encontrada"},
		{http.MethodGet, "/administrador/7", "", "Administrador não encontrado"},
		{http.MethodPut, "/administrador/7", `{"senha":"x"}`, "Administrador não encontrado"},
		{http.MethodDelete, "/contato/7", "", "Contato não encontrado"},
		{http.MethodPut, "/contato/7", `{"email":"x@y.com"}`, "Contato não encontrado"},
	}

	for _, tc := range cases {
		rec := app.do(tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.method+" "+tc.path)
		assert.JSONEq(t, `{"mensagem":"`+tc.message+`"}`, rec.Body.String())
	}

	assert.Equal(t, 0, app.images.Len())
	assert.Equal(t, 1, app.contas.Len())
}

func TestCreate_MissingRequiredField(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/imagens", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{
		"erro": "Dados inválidos",
		"mensagem": "O campo contendo o link da imagem é obrigatório",
		"campos": [{"campo": "link_imagem", "erro": "O campo contendo o link da imagem é obrigatório"}]
	}`, rec.Body.String())
	assert.Equal(t, 0, app.images.Len())

	rec = app.do(http.MethodPost, "/administrador", `{"email":"a@b.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "O campo senha é obrigatório")
	assert.Equal(t, 0, app.admins.Len())

	rec = app.do(http.MethodPost, "/contato", `{"instagram":"@g","facebook":"fb","email":"g@g.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "O campo whatsapp é obrigatório")
	assert.Equal(t, 0, app.contas.Len())
}

func TestAdministrador_PasswordOnlyUpdate(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusCreated, app.do(http.MethodPost, "/administrador", `{"email":"a@b.com","senha":"old"}`).Code)

	rec := app.do(http.MethodPut, "/administrador/1", `{"senha":"new"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"mensagem":"Administrador atualizado com sucesso!"}`, rec.Body.String())

	rec = app.do(http.MethodGet, "/administrador/1", "")
	assert.JSONEq(t, `[{"id":1,"email":"a@b.com"}]`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "senha")

	var admin model.Administrator
	stored, err := app.admins.GetByID(t.Context(), 1)
	require.NoError(t, err)
	admin = *stored
	assert.Equal(t, "a@b.com", admin.Email)
	assert.True(t, admin.CheckPassword("new"))
}

func TestAdministrador_OverlongPasswordIsBadRequest(t *testing.T) {
	app := newTestApp(t)
	senha := strings.Repeat("x", 73)

	rec := app.do(http.MethodPost, "/administrador", `{"email":"a@b.com","senha":"`+senha+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"erro":"Dados inválidos","mensagem":"`+service.MsgSenhaTooLong+`","campos":[{"campo":"senha","erro":"`+service.MsgSenhaTooLong+`"}]}`, rec.Body.String())
	assert.Equal(t, 0, app.admins.Len())

	require.Equal(t, http.StatusCreated, app.do(http.MethodPost, "/administrador", `{"email":"a@b.com","senha":"old"}`).Code)

	rec = app.do(http.MethodPut, "/administrador/1", `{"senha":"`+senha+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), service.MsgSenhaTooLong)

	stored, err := app.admins.GetByID(t.Context(), 1)
	require.NoError(t, err)
	assert.True(t, stored.CheckPassword("old"))
}

func TestContato_PartialUpdateThenDelete(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusCreated, app.do(http.MethodPost, "/contato",
		`{"instagram":"@g","facebook":"fb/g","whatsapp":"5511999999999","email":"g@g.com"}`).Code)

	rec := app.do(http.MethodPut, "/contato/1", `{"whatsapp":"5511888888888"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodGet, "/contato/1", "")
	var contacts []model.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &contacts))
	require.Len(t, contacts, 1)
	assert.Equal(t, model.Contact{ID: 1, Instagram: "@g", Facebook: "fb/g", Whatsapp: "5511888888888", Email: "g@g.com"}, contacts[0])

	rec = app.do(http.MethodDelete, "/contato/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"mensagem":"Contato excluído com sucesso!"}`, rec.Body.String())
	assert.Equal(t, 0, app.contas.Len())
}

func TestInvalidID(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/imagens/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "O parâmetro id é inválido")

	rec = app.do(http.MethodDelete, "/imagens/0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoreFailureIsGeneric500(t *testing.T) {
	app := newTestApp(t)
	app.images.Err = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

	rec := app.do(http.MethodGet, "/imagens", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"erro":"Erro interno do servidor"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "5432")
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/questoes", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"mensagem":"Rota não encontrada"}`, rec.Body.String())
}

func TestRequestIDHeader(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/imagens", "")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func (a *testApp) from(remoteAddr, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodGet, "/imagens", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set(echo.HeaderXForwardedFor, forwardedFor)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimit_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	app := newTestAppWithConfig(t, func(cfg *config.Config) {
		cfg.Server.RateLimit = 1
	})

	assert.Equal(t, http.StatusOK, app.from("9.9.9.9:1234", ""))
	assert.Equal(t, http.StatusTooManyRequests, app.from("9.9.9.9:1234", "1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, app.from("9.9.9.9:1234", "2.2.2.2"))
	assert.Equal(t, http.StatusTooManyRequests, app.from("9.9.9.9:1234", "3.3.3.3"))

	assert.Equal(t, http.StatusOK, app.from("8.8.8.8:1234", ""), "other peers keep their own budget")
}

func TestRateLimit_TrustedProxyForwardsClientIP(t *testing.T) {
	app := newTestAppWithConfig(t, func(cfg *config.Config) {
		cfg.Server.RateLimit = 1
		cfg.Server.TrustedProxies = []string{"10.0.0.0/8"}
	})

	assert.Equal(t, http.StatusOK, app.from("10.1.1.1:1234", "1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, app.from("10.1.1.1:1234", "1.1.1.1"))
	assert.Equal(t, http.StatusOK, app.from("10.1.1.1:1234", "2.2.2.2"))

	// an untrusted peer cannot pick its identity
	assert.Equal(t, http.StatusOK, app.from("9.9.9.9:1234", "2.2.2.2"))
	assert.Equal(t, http.StatusTooManyRequests, app.from("9.9.9.9:1234", "3.3.3.3"))
}
