package sqlerr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/galeria-api/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// entityNames maps table names onto the singular Portuguese entity name used
// in client messages.
var entityNames = map[string]string{
	"imagens":         "imagem",
	"administradores": "administrador",
	"contatos":        "contato",
}

var uniqueConstraintRe = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// ErrCode reports the mapped Code for a given error, or Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return MapCode(pgerr.Code)
	}
	return Other
}

// ConvertPgError converts a raw pgconn.PgError into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode builds "<ENTITY>_<ACTION>" codes, e.g. ADMINISTRADOR_ALREADY_EXISTS.
func generateErrorCode(tableName string, errType Code) string {
	domain := strings.ToUpper(getEntityName(tableName))

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidText, NumericOutOfRange:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func getEntityName(tableName string) string {
	if name, ok := entityNames[tableName]; ok {
		return name
	}
	return "registro"
}

// humanizeText converts snake_case identifiers into Title Case ("link_imagem" -> "Link Imagem").
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.BrazilianPortuguese).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation infers the column from a constraint name
// following "unique_<table>_<column>" or "<table>_<column>_key".
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueConstraintRe.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("O %s referenciado não existe", entityName)

	case UniqueViolation:
		column := extractColumnForUniqueViolation(sqlErr.ConstraintName)
		if column == "" {
			return fmt.Sprintf("Já existe um %s com este identificador", entityName)
		}
		return fmt.Sprintf("Já existe um %s com este %s", entityName, column)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "campo"
		}
		return fmt.Sprintf("O campo %s é obrigatório", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("O valor de %s não atende às condições exigidas", fieldName)
		}
		return "Um ou mais valores não atendem às condições exigidas"

	case InvalidText, NumericOutOfRange:
		return "Um ou mais valores têm formato inválido"

	default:
		return "Ocorreu um erro ao processar sua requisição"
	}
}

// HandleError converts a low-level database error into an application-level error.
//
//   - *errs.HTTPError: returned unchanged
//   - constraint violations: 400 with a friendly message
//   - pgx.ErrNoRows: 404 "Registro não encontrado"
//   - anything else: the generic 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation, UniqueViolation, CheckViolation, InvalidText, NumericOutOfRange:
			return errs.NewBadRequestError(userMessage, &errorCode, nil)

		case NotNullViolation:
			fields := []errs.FieldError{{
				Field: strings.ToLower(sqlErr.ColumnName),
				Error: userMessage,
			}}
			return errs.NewBadRequestError(userMessage, &errorCode, fields)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NewNotFoundError("Registro não encontrado", nil)
	}

	return errs.NewInternalServerError()
}
