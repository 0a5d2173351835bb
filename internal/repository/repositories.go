package repository

import (
	"github.com/deppfellow/galeria-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Image         *ImageRepository
	Administrator *AdministratorRepository
	Contact       *ContactRepository
}

// NewRepositories builds every repository on the shared pool in s.DB.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Image:         NewImageRepository(s),
		Administrator: NewAdministratorRepository(s),
		Contact:       NewContactRepository(s),
	}
}
