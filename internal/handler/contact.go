package handler

import (
	"fmt"

	"github.com/deppfellow/galeria-api/internal/model"
	"github.com/deppfellow/galeria-api/internal/server"
	"github.com/deppfellow/galeria-api/internal/service"
	"github.com/deppfellow/galeria-api/internal/validation"
	"github.com/labstack/echo/v4"
)

type CreateContactRequest struct {
	Instagram string `json:"instagram" validate:"required"`
	Facebook  string `json:"facebook" validate:"required"`
	Whatsapp  string `json:"whatsapp" validate:"required"`
	Email     string `json:"email" validate:"required"`
}

func (r *CreateContactRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateContactRequest struct {
	ID        int64  `param:"id" json:"-" validate:"required,min=1"`
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Whatsapp  string `json:"whatsapp"`
	Email     string `json:"email"`
}

func (r *UpdateContactRequest) Validate() error {
	return validation.Struct(r)
}

type ContactHandler struct {
	Handler
	contactService *service.ContactService
}

func NewContactHandler(s *server.Server, contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{
		Handler:        NewHandler(s),
		contactService: contactService,
	}
}

func (h *ContactHandler) List(c echo.Context, _ *EmptyRequest) ([]model.Contact, error) {
	return h.contactService.List(c.Request().Context())
}

func (h *ContactHandler) Get(c echo.Context, req *IDRequest) ([]model.Contact, error) {
	contact, err := h.contactService.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return []model.Contact{*contact}, nil
}

func (h *ContactHandler) Create(c echo.Context, req *CreateContactRequest) (MessageResponse, error) {
	contact, err := h.contactService.Create(c.Request().Context(), model.Contact{
		Instagram: req.Instagram,
		Facebook:  req.Facebook,
		Whatsapp:  req.Whatsapp,
		Email:     req.Email,
	})
	if err != nil {
		return MessageResponse{}, err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/contato/%d", contact.ID))
	return MessageResponse{Mensagem: service.MsgContactCreated}, nil
}

func (h *ContactHandler) Update(c echo.Context, req *UpdateContactRequest) (MessageResponse, error) {
	_, err := h.contactService.Update(c.Request().Context(), req.ID, model.ContactPatch{
		Instagram: req.Instagram,
		Facebook:  req.Facebook,
		Whatsapp:  req.Whatsapp,
		Email:     req.Email,
	})
	if err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{Mensagem: service.MsgContactUpdated}, nil
}

func (h *ContactHandler) Delete(c echo.Context, req *IDRequest) (MessageResponse, error) {
	if err := h.contactService.Delete(c.Request().Context(), req.ID); err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{Mensagem: service.MsgContactDeleted}, nil
}
