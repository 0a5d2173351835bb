package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/galeria-api/internal/errs"
	"github.com/deppfellow/galeria-api/internal/model"
	"github.com/deppfellow/galeria-api/internal/server"
	"golang.org/x/crypto/bcrypt"
)

const (
	MsgAdministratorNotFound = "Administrador não encontrado"
	MsgAdministratorCreated  = "Administrador criado com sucesso!"
	MsgAdministratorUpdated  = "Administrador atualizado com sucesso!"
	MsgAdministratorDeleted  = "Administrador excluído com sucesso!"

	// MaxSenhaBytes is the longest password bcrypt accepts.
	MaxSenhaBytes = 72

	MsgSenhaTooLong = "O campo senha deve ter no máximo 72 bytes"
)

// AdministratorStore is the persistence the administrator service needs.
type AdministratorStore interface {
	List(ctx context.Context) ([]model.Administrator, error)
	GetByID(ctx context.Context, id int64) (*model.Administrator, error)
	Create(ctx context.Context, admin model.Administrator) (*model.Administrator, error)
	Update(ctx context.Context, id int64, patch model.AdministratorPatch) (*model.Administrator, error)
	Delete(ctx context.Context, id int64) error
}

type AdministratorService struct {
	server *server.Server
	store  AdministratorStore
}

func NewAdministratorService(s *server.Server, store AdministratorStore) *AdministratorService {
	return &AdministratorService{server: s, store: store}
}

func (s *AdministratorService) List(ctx context.Context) ([]model.Administrator, error) {
	admins, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if admins == nil {
		admins = []model.Administrator{}
	}
	return admins, nil
}

func (s *AdministratorService) Get(ctx context.Context, id int64) (*model.Administrator, error) {
	admin, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, MsgAdministratorNotFound)
	}
	return admin, nil
}

// Create stores a new administrator with senha hashed.
func (s *AdministratorService) Create(ctx context.Context, email, senha string) (*model.Administrator, error) {
	hash, err := hashSenha(senha)
	if err != nil {
		return nil, err
	}

	admin, err := s.store.Create(ctx, model.Administrator{Email: email, SenhaHash: hash})
	if err != nil {
		return nil, err
	}

	s.server.Logger.Info().Int64("administrator_id", admin.ID).Msg("administrator created")
	return admin, nil
}

// Update applies a partial update. A non-empty senha is rehashed; an empty one
// keeps the stored hash.
func (s *AdministratorService) Update(ctx context.Context, id int64, email, senha string) (*model.Administrator, error) {
	patch := model.AdministratorPatch{Email: email}

	if senha != "" {
		hash, err := hashSenha(senha)
		if err != nil {
			return nil, err
		}
		patch.SenhaHash = hash
	}

	admin, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, mapNotFound(err, MsgAdministratorNotFound)
	}

	if patch.SenhaHash != "" {
		s.server.Logger.Info().Int64("administrator_id", id).Msg("administrator password changed")
	}
	return admin, nil
}

func (s *AdministratorService) Delete(ctx context.Context, id int64) error {
	return mapNotFound(s.store.Delete(ctx, id), MsgAdministratorNotFound)
}

// hashSenha hashes senha, turning a password bcrypt cannot take into a 400.
func hashSenha(senha string) (string, error) {
	hash, err := model.HashPassword(senha)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", errs.NewBadRequestError(MsgSenhaTooLong, nil, []errs.FieldError{
			{Field: "senha", Error: MsgSenhaTooLong},
		})
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash administrator password: %w", err)
	}
	return hash, nil
}
