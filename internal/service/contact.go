package service

import (
	"context"

	"github.com/deppfellow/galeria-api/internal/model"
	"github.com/deppfellow/galeria-api/internal/server"
)

const (
	MsgContactNotFound = "Contato não encontrado"
	MsgContactCreated  = "Contato criado com sucesso!"
	MsgContactUpdated  = "Contato atualizado com sucesso!"
	MsgContactDeleted  = "Contato excluído com sucesso!"
)

// ContactStore is the persistence the contact service needs.
type ContactStore interface {
	List(ctx context.Context) ([]model.Contact, error)
	GetByID(ctx context.Context, id int64) (*model.Contact, error)
	Create(ctx context.Context, contact model.Contact) (*model.Contact, error)
	Update(ctx context.Context, id int64, patch model.ContactPatch) (*model.Contact, error)
	Delete(ctx context.Context, id int64) error
}

type ContactService struct {
	server *server.Server
	store  ContactStore
}

func NewContactService(s *server.Server, store ContactStore) *ContactService {
	return &ContactService{server: s, store: store}
}

func (s *ContactService) List(ctx context.Context) ([]model.Contact, error) {
	contacts, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}
	return contacts, nil
}

func (s *ContactService) Get(ctx context.Context, id int64) (*model.Contact, error) {
	contact, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, MsgContactNotFound)
	}
	return contact, nil
}

func (s *ContactService) Create(ctx context.Context, contact model.Contact) (*model.Contact, error) {
	contact.ID = 0
	return s.store.Create(ctx, contact)
}

func (s *ContactService) Update(ctx context.Context, id int64, patch model.ContactPatch) (*model.Contact, error) {
	contact, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, mapNotFound(err, MsgContactNotFound)
	}
	return contact, nil
}

func (s *ContactService) Delete(ctx context.Context, id int64) error {
	return mapNotFound(s.store.Delete(ctx, id), MsgContactNotFound)
}
