package service

import (
	"context"

	"github.com/deppfellow/galeria-api/internal/model"
	"github.com/deppfellow/galeria-api/internal/server"
)

const (
	MsgImageNotFound = "Imagem não encontrada"
	MsgImageCreated  = "Imagem criada com sucesso!"
	MsgImageUpdated  = "Imagem atualizada com sucesso!"
	MsgImageDeleted  = "Imagem excluída com sucesso!"
)

// ImageStore is the persistence the image service needs.
type ImageStore interface {
	List(ctx context.Context) ([]model.Image, error)
	GetByID(ctx context.Context, id int64) (*model.Image, error)
	Create(ctx context.Context, image model.Image) (*model.Image, error)
	Update(ctx context.Context, id int64, patch model.ImagePatch) (*model.Image, error)
	Delete(ctx context.Context, id int64) error
}

type ImageService struct {
	server *server.Server
	store  ImageStore
}

func NewImageService(s *server.Server, store ImageStore) *ImageService {
	return &ImageService{server: s, store: store}
}

func (s *ImageService) List(ctx context.Context) ([]model.Image, error) {
	images, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if images == nil {
		images = []model.Image{}
	}
	return images, nil
}

func (s *ImageService) Get(ctx context.Context, id int64) (*model.Image, error) {
	image, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, MsgImageNotFound)
	}
	return image, nil
}

func (s *ImageService) Create(ctx context.Context, linkImagem string) (*model.Image, error) {
	return s.store.Create(ctx, model.Image{LinkImagem: linkImagem})
}

func (s *ImageService) Update(ctx context.Context, id int64, patch model.ImagePatch) (*model.Image, error) {
	image, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, mapNotFound(err, MsgImageNotFound)
	}
	return image, nil
}

func (s *ImageService) Delete(ctx context.Context, id int64) error {
	return mapNotFound(s.store.Delete(ctx, id), MsgImageNotFound)
}
