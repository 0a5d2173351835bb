package router

import (
	"net/http"

	"github.com/deppfellow/galeria-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerResourceRoutes registers the CRUD routes of every resource.
func registerResourceRoutes(r *echo.Echo, h *handler.Handlers) {
	imagens := r.Group("/imagens")
	imagens.GET("", handler.Handle(h.Image.List, http.StatusOK))
	imagens.GET("/:id", handler.Handle(h.Image.Get, http.StatusOK))
	imagens.POST("", handler.Handle(h.Image.Create, http.StatusCreated))
	imagens.PUT("/:id", handler.Handle(h.Image.Update, http.StatusOK))
	imagens.DELETE("/:id", handler.Handle(h.Image.Delete, http.StatusOK))

	administrador := r.Group("/administrador")
	administrador.GET("", handler.Handle(h.Administrator.List, http.StatusOK))
	administrador.GET("/:id", handler.Handle(h.Administrator.Get, http.StatusOK))
	administrador.POST("", handler.Handle(h.Administrator.Create, http.StatusCreated))
	administrador.PUT("/:id", handler.Handle(h.Administrator.Update, http.StatusOK))
	administrador.DELETE("/:id", handler.Handle(h.Administrator.Delete, http.StatusOK))

	contato := r.Group("/contato")
	contato.GET("", handler.Handle(h.Contact.List, http.StatusOK))
	contato.GET("/:id", handler.Handle(h.Contact.Get, http.StatusOK))
	contato.POST("", handler.Handle(h.Contact.Create, http.StatusCreated))
	contato.PUT("/:id", handler.Handle(h.Contact.Update, http.StatusOK))
	contato.DELETE("/:id", handler.Handle(h.Contact.Delete, http.StatusOK))
}
