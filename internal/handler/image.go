package handler

import (
	"fmt"

	"github.com/deppfellow/galeria-api/internal/model"
	"github.com/deppfellow/galeria-api/internal/server"
	"github.com/deppfellow/galeria-api/internal/service"
	"github.com/deppfellow/galeria-api/internal/validation"
	"github.com/labstack/echo/v4"
)

type CreateImageRequest struct {
	LinkImagem string `json:"link_imagem" validate:"required"`
}

func (r *CreateImageRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateImageRequest) FieldMessages() map[string]string {
	return map[string]string{
		"link_imagem.required": "O campo contendo o link da imagem é obrigatório",
	}
}

type UpdateImageRequest struct {
	ID         int64  `param:"id" json:"-" validate:"required,min=1"`
	LinkImagem string `json:"link_imagem"`
}

func (r *UpdateImageRequest) Validate() error {
	return validation.Struct(r)
}

type ImageHandler struct {
	Handler
	imageService *service.ImageService
}

func NewImageHandler(s *server.Server, imageService *service.ImageService) *ImageHandler {
	return &ImageHandler{
		Handler:      NewHandler(s),
		imageService: imageService,
	}
}

func (h *ImageHandler) List(c echo.Context, _ *EmptyRequest) ([]model.Image, error) {
	return h.imageService.List(c.Request().Context())
}

// Get returns the row wrapped in a one-element array.
func (h *ImageHandler) Get(c echo.Context, req *IDRequest) ([]model.Image, error) {
	image, err := h.imageService.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return []model.Image{*image}, nil
}

func (h *ImageHandler) Create(c echo.Context, req *CreateImageRequest) (MessageResponse, error) {
	image, err := h.imageService.Create(c.Request().Context(), req.LinkImagem)
	if err != nil {
		return MessageResponse{}, err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/imagens/%d", image.ID))
	return MessageResponse{Mensagem: service.MsgImageCreated}, nil
}

func (h *ImageHandler) Update(c echo.Context, req *UpdateImageRequest) (MessageResponse, error) {
	_, err := h.imageService.Update(c.Request().Context(), req.ID, model.ImagePatch{
		LinkImagem: req.LinkImagem,
	})
	if err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{Mensagem: service.MsgImageUpdated}, nil
}

func (h *ImageHandler) Delete(c echo.Context, req *IDRequest) (MessageResponse, error) {
	if err := h.imageService.Delete(c.Request().Context(), req.ID); err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{Mensagem: service.MsgImageDeleted}, nil
}
