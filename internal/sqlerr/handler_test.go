package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/galeria-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "administradores",
		ConstraintName: "administradores_email_key",
	}

	httpErr := asHTTPError(t, HandleError(fmt.Errorf("insert: %w", pgErr)))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "ADMINISTRADOR_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "Já existe um administrador com este email", httpErr.Mensagem)
}

func TestHandleError_NotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23502", TableName: "imagens", ColumnName: "link_imagem"}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "IMAGEM_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Campos, 1)
	assert.Equal(t, "link_imagem", httpErr.Campos[0].Field)
	assert.Equal(t, "O campo Link Imagem é obrigatório", httpErr.Mensagem)
}

func TestHandleError_UnknownPgErrorIsInternal(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "XX000", Message: "internal error detail"}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Empty(t, httpErr.Mensagem, "driver details must not leak to clients")
}

func TestHandleError_NoRows(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(fmt.Errorf("select: %w", pgx.ErrNoRows)))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewNotFoundError("Contato não encontrado", nil)
	assert.Same(t, original, HandleError(original))
}

func TestHandleError_UnknownError(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("dial tcp: connection refused")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, errs.LabelInternal, httpErr.Erro)
}

func TestErrCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, ErrCode(&pgconn.PgError{Code: "23505"}))
	assert.Equal(t, CheckViolation, ErrCode(ConvertPgError(&pgconn.PgError{Code: "23514"})))
	assert.Equal(t, Other, ErrCode(errors.New("boom")))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_administradores_email"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("administradores_email_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}
