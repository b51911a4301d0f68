package database

import (
	"errors"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
)

const codeForeignKeyViolation = "23503"

func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}

// ReferenceError turns a foreign key violation into a validation error on
// field. Other errors are returned unchanged.
func ReferenceError(err error, field string) error {
	if IsForeignKeyViolation(err) {
		return model.Invalid(field, "object does not exist or is still referenced")
	}
	return err
}

// ConstraintName returns the violated constraint of a Postgres error, or ""
// for anything else.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
