// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and maps the resource and system paths to
// their handlers.
package router

import (
	"net"

	"github.com/deppfellow/galeria-api/internal/handler"
	"github.com/deppfellow/galeria-api/internal/middleware"
	"github.com/deppfellow/galeria-api/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance with the global middleware chain,
// the error handler and every route.
func NewRouter(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = m.Global.GlobalErrorHandler
	router.IPExtractor = ipExtractor(s.Config.Server.TrustedProxies)

	router.Use(
		m.Global.CORS(),
		m.Global.Secure(),
		middleware.RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
		m.Global.Recover(),
		m.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)
	registerResourceRoutes(router, h)

	return router
}

// ipExtractor reads X-Forwarded-For only when it comes from a trusted proxy.
// Without trusted proxies the peer address is used as is.
func ipExtractor(trustedProxies []string) echo.IPExtractor {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect()
	}

	options := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trustedProxies {
		// validated as CIDRs when the config is loaded
		if _, ipNet, err := net.ParseCIDR(cidr); err == nil {
			options = append(options, echo.TrustIPRange(ipNet))
		}
	}

	return echo.ExtractIPFromXFFHeader(options...)
}
