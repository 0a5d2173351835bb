package middleware

import (
	"net/http"

	"github.com/deppfellow/galeria-api/internal/errs"
	"github.com/deppfellow/galeria-api/internal/server"
	"github.com/deppfellow/galeria-api/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// MsgRouteNotFound is the body message for requests that match no route.
const MsgRouteNotFound = "Rota não encontrada"

// statusMessages replaces echo's English texts for the errors it raises itself.
var statusMessages = map[int]string{
	http.StatusMethodNotAllowed:      "Método não permitido",
	http.StatusRequestEntityTooLarge: "Corpo da requisição muito grande",
	http.StatusUnsupportedMediaType:  "Tipo de conteúdo não suportado",
}

// GlobalMiddlewares groups the middleware applied to every route and the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger writes one "API" line per request, leveled by status.
//
// When a handler returns an error the final status is only written later by
// GlobalErrorHandler, so it is derived from the error here.
// https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			if v.Error != nil {
				var httpErr *errs.HTTPError
				var echoErr *echo.HTTPError

				if errors.As(v.Error, &httpErr) {
					statusCode = httpErr.Status
				} else if errors.As(v.Error, &echoErr) {
					statusCode = echoErr.Code
				} else {
					statusCode = http.StatusInternalServerError
				}
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler is the final error funnel for the HTTP server.
//
// *errs.HTTPError is written as is; echo 404s become "Rota não encontrada";
// other echo errors keep their status; everything else goes through
// sqlerr.HandleError, which sanitizes driver errors.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			httpErr = fromEchoError(echoErr)
		} else {
			_ = errors.As(sqlerr.HandleError(err), &httpErr)
		}
	}

	if httpErr == nil {
		httpErr = errs.NewInternalServerError()
	}

	logger := GetLogger(c)

	var e *zerolog.Event
	if httpErr.Status >= http.StatusInternalServerError {
		e = logger.Error().Stack()
	} else {
		e = logger.Warn()
	}

	e.Err(originalErr).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Error())

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(httpErr.Status)
			return
		}
		_ = c.JSON(httpErr.Status, httpErr)
	}
}

func fromEchoError(echoErr *echo.HTTPError) *errs.HTTPError {
	if echoErr.Code == http.StatusNotFound {
		return errs.NewNotFoundError(MsgRouteNotFound, nil)
	}

	if echoErr.Code >= http.StatusInternalServerError {
		return errs.NewInternalServerError()
	}

	message, ok := statusMessages[echoErr.Code]
	if !ok {
		if message, ok = echoErr.Message.(string); !ok {
			message = http.StatusText(echoErr.Code)
		}
	}

	return &errs.HTTPError{
		Mensagem: message,
		Code:     errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
		Status:   echoErr.Code,
	}
}
