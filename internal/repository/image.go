package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/galeria-api/internal/model"
	"github.com/deppfellow/galeria-api/internal/server"
	"github.com/jackc/pgx/v5"
)

type ImageRepository struct {
	server *server.Server
}

func NewImageRepository(s *server.Server) *ImageRepository {
	return &ImageRepository{server: s}
}

func (r *ImageRepository) List(ctx context.Context) ([]model.Image, error) {
	stmt := `
		SELECT id, link_imagem
		FROM imagens
		ORDER BY id
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list images query: %w", err)
	}

	images, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Image])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:imagens: %w", err)
	}

	return images, nil
}

func (r *ImageRepository) GetByID(ctx context.Context, id int64) (*model.Image, error) {
	stmt := `
		SELECT id, link_imagem
		FROM imagens
		WHERE id = $1
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, id)
	if err != nil {
		return nil, fmt.Errorf("failed to execute get image query for id=%d: %w", id, err)
	}

	image, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Image])
	if err != nil {
		return nil, notFound(err)
	}

	return &image, nil
}

func (r *ImageRepository) Create(ctx context.Context, image model.Image) (*model.Image, error) {
	stmt := `
		INSERT INTO imagens (link_imagem)
		VALUES ($1)
		RETURNING id, link_imagem
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, image.LinkImagem)
	if err != nil {
		return nil, fmt.Errorf("failed to execute create image query: %w", err)
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Image])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:imagens: %w", err)
	}

	return &created, nil
}

func (r *ImageRepository) Update(ctx context.Context, id int64, patch model.ImagePatch) (*model.Image, error) {
	selectStmt := `
		SELECT id, link_imagem
		FROM imagens
		WHERE id = $1
		FOR UPDATE
	`

	updateStmt := `
		UPDATE imagens
		SET link_imagem = $1
		WHERE id = $2
	`

	return updateRow(ctx, r.server.DB.Pool, selectStmt, id,
		func(current model.Image) model.Image { return current.Apply(patch) },
		func(ctx context.Context, tx pgx.Tx, merged model.Image) error {
			if _, err := tx.Exec(ctx, updateStmt, merged.LinkImagem, merged.ID); err != nil {
				return fmt.Errorf("failed to execute update image query for id=%d: %w", id, err)
			}
			return nil
		},
	)
}

func (r *ImageRepository) Delete(ctx context.Context, id int64) error {
	stmt := `
		DELETE FROM imagens
		WHERE id = $1
		RETURNING id
	`

	return deleteRow(ctx, r.server.DB.Pool, stmt, id)
}
