package service

import (
	"github.com/deppfellow/galeria-api/internal/repository"
	"github.com/deppfellow/galeria-api/internal/server"
)

type Services struct {
	Image         *ImageService
	Administrator *AdministratorService
	Contact       *ContactService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Image:         NewImageService(s, repos.Image),
		Administrator: NewAdministratorService(s, repos.Administrator),
		Contact:       NewContactService(s, repos.Contact),
	}
}
