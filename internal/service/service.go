// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives validated
// data from the handler, applies the resource rules (partial updates,
// password hashing) and turns missing rows into 404 errors.
package service

import (
	"errors"

	"github.com/deppfellow/galeria-api/internal/errs"
	"github.com/deppfellow/galeria-api/internal/repository"
)

// mapNotFound replaces repository.ErrNotFound with a 404 carrying message.
func mapNotFound(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return errs.NewNotFoundError(message, nil)
	}
	return err
}
