package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/spec-kit/bloglist/pkg/util"
)

const (
	pgUniqueViolation  = "23505"
	pgInvalidTextValue = "22P02"
)

// checkUUID rejects ids that Postgres would fail to cast.
func checkUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewMalformattedID(id, err)
	}
	return nil
}

// mapPgError converts driver errors into Failures; anything unrecognised is returned as is.
func mapPgError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.NewDuplicateKey(constraintField(pgErr.TableName, pgErr.ConstraintName), err)
		case pgInvalidTextValue:
			return apperrors.NewMalformattedID("", err)
		}
	}
	return err
}

// constraintField turns "users_username_key" into "username".
func constraintField(table, constraint string) string {
	field := strings.TrimSuffix(constraint, "_key")
	if table != "" {
		field = strings.TrimPrefix(field, table+"_")
	}
	return field
}
