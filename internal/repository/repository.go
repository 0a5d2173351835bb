// Package repository handles all interactions with the database.
//
// It contains the SQL for each table and maps driver results onto the model
// types. Every statement uses positional parameters.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when the addressed row does not exist.
var ErrNotFound = errors.New("registro não encontrado")

// notFound translates pgx.ErrNoRows into ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// updateRow locks the row returned by selectSQL, merges it with apply and
// persists the result with write, all in one transaction.
func updateRow[T any](
	ctx context.Context,
	pool *pgxpool.Pool,
	selectSQL string,
	id int64,
	apply func(T) T,
	write func(ctx context.Context, tx pgx.Tx, merged T) error,
) (*T, error) {
	var merged T

	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectSQL, id)
		if err != nil {
			return err
		}

		current, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
		if err != nil {
			return notFound(err)
		}

		merged = apply(current)
		return write(ctx, tx, merged)
	})
	if err != nil {
		return nil, err
	}

	return &merged, nil
}

// deleteRow runs a DELETE ... RETURNING id statement.
func deleteRow(ctx context.Context, pool *pgxpool.Pool, deleteSQL string, id int64) error {
	var deleted int64
	if err := pool.QueryRow(ctx, deleteSQL, id).Scan(&deleted); err != nil {
		return notFound(err)
	}
	return nil
}
