package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/galeria-api/internal/model"
	"github.com/deppfellow/galeria-api/internal/server"
	"github.com/jackc/pgx/v5"
)

type AdministratorRepository struct {
	server *server.Server
}

func NewAdministratorRepository(s *server.Server) *AdministratorRepository {
	return &AdministratorRepository{server: s}
}

func (r *AdministratorRepository) List(ctx context.Context) ([]model.Administrator, error) {
	stmt := `
		SELECT id, email, senha_hash
		FROM administradores
		ORDER BY id
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list administrators query: %w", err)
	}

	admins, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Administrator])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:administradores: %w", err)
	}

	return admins, nil
}

func (r *AdministratorRepository) GetByID(ctx context.Context, id int64) (*model.Administrator, error) {
	stmt := `
		SELECT id, email, senha_hash
		FROM administradores
		WHERE id = $1
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, id)
	if err != nil {
		return nil, fmt.Errorf("failed to execute get administrator query for id=%d: %w", id, err)
	}

	admin, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Administrator])
	if err != nil {
		return nil, notFound(err)
	}

	return &admin, nil
}

func (r *AdministratorRepository) Create(ctx context.Context, admin model.Administrator) (*model.Administrator, error) {
	stmt := `
		INSERT INTO administradores (email, senha_hash)
		VALUES ($1, $2)
		RETURNING id, email, senha_hash
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, admin.Email, admin.SenhaHash)
	if err != nil {
		return nil, fmt.Errorf("failed to execute create administrator query: %w", err)
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Administrator])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:administradores: %w", err)
	}

	return &created, nil
}

func (r *AdministratorRepository) Update(ctx context.Context, id int64, patch model.AdministratorPatch) (*model.Administrator, error) {
	selectStmt := `
		SELECT id, email, senha_hash
		FROM administradores
		WHERE id = $1
		FOR UPDATE
	`

	updateStmt := `
		UPDATE administradores
		SET email = $1, senha_hash = $2
		WHERE id = $3
	`

	return updateRow(ctx, r.server.DB.Pool, selectStmt, id,
		func(current model.Administrator) model.Administrator { return current.Apply(patch) },
		func(ctx context.Context, tx pgx.Tx, merged model.Administrator) error {
			if _, err := tx.Exec(ctx, updateStmt, merged.Email, merged.SenhaHash, merged.ID); err != nil {
				return fmt.Errorf("failed to execute update administrator query for id=%d: %w", id, err)
			}
			return nil
		},
	)
}

func (r *AdministratorRepository) Delete(ctx context.Context, id int64) error {
	stmt := `
		DELETE FROM administradores
		WHERE id = $1
		RETURNING id
	`

	return deleteRow(ctx, r.server.DB.Pool, stmt, id)
}
