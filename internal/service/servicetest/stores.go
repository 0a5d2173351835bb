// Package servicetest provides in-memory stores that satisfy the service
// store interfaces, for tests that must not touch PostgreSQL.
package servicetest

import (
	"context"
	"sort"
	"sync"

	"github.com/deppfellow/galeria-api/internal/model"
	"github.com/deppfellow/galeria-api/internal/repository"
)

// table is an in-memory table with a bigserial-like id sequence.
// Err, when set, is returned by every operation.
type table[T any] struct {
	mu     sync.Mutex
	rows   map[int64]T
	nextID int64
	Err    error
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T), nextID: 1}
}

func (t *table[T]) list() ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Err != nil {
		return nil, t.Err
	}

	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out, nil
}

func (t *table[T]) get(id int64) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Err != nil {
		return nil, t.Err
	}
	row, ok := t.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (t *table[T]) insert(build func(id int64) T) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Err != nil {
		return nil, t.Err
	}
	row := build(t.nextID)
	t.rows[t.nextID] = row
	t.nextID++
	return &row, nil
}

func (t *table[T]) update(id int64, apply func(T) T) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Err != nil {
		return nil, t.Err
	}
	row, ok := t.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	row = apply(row)
	t.rows[id] = row
	return &row, nil
}

func (t *table[T]) delete(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Err != nil {
		return t.Err
	}
	if _, ok := t.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

// Len returns the number of stored rows.
func (t *table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

type ImageStore struct{ *table[model.Image] }

func NewImageStore() *ImageStore { return &ImageStore{newTable[model.Image]()} }

func (s *ImageStore) List(context.Context) ([]model.Image, error) { return s.list() }

func (s *ImageStore) GetByID(_ context.Context, id int64) (*model.Image, error) { return s.get(id) }

func (s *ImageStore) Create(_ context.Context, image model.Image) (*model.Image, error) {
	return s.insert(func(id int64) model.Image {
		image.ID = id
		return image
	})
}

func (s *ImageStore) Update(_ context.Context, id int64, patch model.ImagePatch) (*model.Image, error) {
	return s.update(id, func(current model.Image) model.Image { return current.Apply(patch) })
}

func (s *ImageStore) Delete(_ context.Context, id int64) error { return s.delete(id) }

type AdministratorStore struct{ *table[model.Administrator] }

func NewAdministratorStore() *AdministratorStore {
	return &AdministratorStore{newTable[model.Administrator]()}
}

func (s *AdministratorStore) List(context.Context) ([]model.Administrator, error) { return s.list() }

func (s *AdministratorStore) GetByID(_ context.Context, id int64) (*model.Administrator, error) {
	return s.get(id)
}

func (s *AdministratorStore) Create(_ context.Context, admin model.Administrator) (*model.Administrator, error) {
	return s.insert(func(id int64) model.Administrator {
		admin.ID = id
		return admin
	})
}

func (s *AdministratorStore) Update(_ context.Context, id int64, patch model.AdministratorPatch) (*model.Administrator, error) {
	return s.update(id, func(current model.Administrator) model.Administrator { return current.Apply(patch) })
}

func (s *AdministratorStore) Delete(_ context.Context, id int64) error { return s.delete(id) }

type ContactStore struct{ *table[model.Contact] }

func NewContactStore() *ContactStore { return &ContactStore{newTable[model.Contact]()} }

func (s *ContactStore) List(context.Context) ([]model.Contact, error) { return s.list() }

func (s *ContactStore) GetByID(_ context.Context, id int64) (*model.Contact, error) { return s.get(id) }

func (s *ContactStore) Create(_ context.Context, contact model.Contact) (*model.Contact, error) {
	return s.insert(func(id int64) model.Contact {
		contact.ID = id
		return contact
	})
}

func (s *ContactStore) Update(_ context.Context, id int64, patch model.ContactPatch) (*model.Contact, error) {
	return s.update(id, func(current model.Contact) model.Contact { return current.Apply(patch) })
}

func (s *ContactStore) Delete(_ context.Context, id int64) error { return s.delete(id) }
