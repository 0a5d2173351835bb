package handler

import (
	"fmt"

	"github.com/deppfellow/galeria-api/internal/model"
	"github.com/deppfellow/galeria-api/internal/server"
	"github.com/deppfellow/galeria-api/internal/service"
	"github.com/deppfellow/galeria-api/internal/validation"
	"github.com/labstack/echo/v4"
)

type CreateAdministratorRequest struct {
	Email string `json:"email" validate:"required"`
	Senha string `json:"senha" validate:"required,max=72"`
}

func (r *CreateAdministratorRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateAdministratorRequest) FieldMessages() map[string]string {
	return map[string]string{"senha.max": service.MsgSenhaTooLong}
}

type UpdateAdministratorRequest struct {
	ID    int64  `param:"id" json:"-" validate:"required,min=1"`
	Email string `json:"email"`
	Senha string `json:"senha" validate:"omitempty,max=72"`
}

func (r *UpdateAdministratorRequest) Validate() error {
	return validation.Struct(r)
}

func (r *UpdateAdministratorRequest) FieldMessages() map[string]string {
	return map[string]string{"senha.max": service.MsgSenhaTooLong}
}

type AdministratorHandler struct {
	Handler
	administratorService *service.AdministratorService
}

func NewAdministratorHandler(s *server.Server, administratorService *service.AdministratorService) *AdministratorHandler {
	return &AdministratorHandler{
		Handler:              NewHandler(s),
		administratorService: administratorService,
	}
}

func (h *AdministratorHandler) List(c echo.Context, _ *EmptyRequest) ([]model.Administrator, error) {
	return h.administratorService.List(c.Request().Context())
}

func (h *AdministratorHandler) Get(c echo.Context, req *IDRequest) ([]model.Administrator, error) {
	admin, err := h.administratorService.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return []model.Administrator{*admin}, nil
}

func (h *AdministratorHandler) Create(c echo.Context, req *CreateAdministratorRequest) (MessageResponse, error) {
	admin, err := h.administratorService.Create(c.Request().Context(), req.Email, req.Senha)
	if err != nil {
		return MessageResponse{}, err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/administrador/%d", admin.ID))
	return MessageResponse{Mensagem: service.MsgAdministratorCreated}, nil
}

func (h *AdministratorHandler) Update(c echo.Context, req *UpdateAdministratorRequest) (MessageResponse, error) {
	if _, err := h.administratorService.Update(c.Request().Context(), req.ID, req.Email, req.Senha); err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{Mensagem: service.MsgAdministratorUpdated}, nil
}

func (h *AdministratorHandler) Delete(c echo.Context, req *IDRequest) (MessageResponse, error) {
	if err := h.administratorService.Delete(c.Request().Context(), req.ID); err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{Mensagem: service.MsgAdministratorDeleted}, nil
}
