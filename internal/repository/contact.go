package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/galeria-api/internal/model"
	"github.com/deppfellow/galeria-api/internal/server"
	"github.com/jackc/pgx/v5"
)

type ContactRepository struct {
	server *server.Server
}

func NewContactRepository(s *server.Server) *ContactRepository {
	return &ContactRepository{server: s}
}

func (r *ContactRepository) List(ctx context.Context) ([]model.Contact, error) {
	stmt := `
		SELECT id, instagram, facebook, whatsapp, email
		FROM contatos
		ORDER BY id
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list contacts query: %w", err)
	}

	contacts, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Contact])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:contatos: %w", err)
	}

	return contacts, nil
}

func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*model.Contact, error) {
	stmt := `
		SELECT id, instagram, facebook, whatsapp, email
		FROM contatos
		WHERE id = $1
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, id)
	if err != nil {
		return nil, fmt.Errorf("failed to execute get contact query for id=%d: %w", id, err)
	}

	contact, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Contact])
	if err != nil {
		return nil, notFound(err)
	}

	return &contact, nil
}

func (r *ContactRepository) Create(ctx context.Context, contact model.Contact) (*model.Contact, error) {
	stmt := `
		INSERT INTO contatos (instagram, facebook, whatsapp, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, instagram, facebook, whatsapp, email
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt,
		contact.Instagram,
		contact.Facebook,
		contact.Whatsapp,
		contact.Email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to execute create contact query: %w", err)
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Contact])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:contatos: %w", err)
	}

	return &created, nil
}

func (r *ContactRepository) Update(ctx context.Context, id int64, patch model.ContactPatch) (*model.Contact, error) {
	selectStmt := `
		SELECT id, instagram, facebook, whatsapp, email
		FROM contatos
		WHERE id = $1
		FOR UPDATE
	`

	updateStmt := `
		UPDATE contatos
		SET instagram = $1, facebook = $2, whatsapp = $3, email = $4
		WHERE id = $5
	`

	return updateRow(ctx, r.server.DB.Pool, selectStmt, id,
		func(current model.Contact) model.Contact { return current.Apply(patch) },
		func(ctx context.Context, tx pgx.Tx, merged model.Contact) error {
			_, err := tx.Exec(ctx, updateStmt,
				merged.Instagram,
				merged.Facebook,
				merged.Whatsapp,
				merged.Email,
				merged.ID,
			)
			if err != nil {
				return fmt.Errorf("failed to execute update contact query for id=%d: %w", id, err)
			}
			return nil
		},
	)
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	stmt := `
		DELETE FROM contatos
		WHERE id = $1
		RETURNING id
	`

	return deleteRow(ctx, r.server.DB.Pool, stmt, id)
}
