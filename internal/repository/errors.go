package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a row does not exist
	ErrNotFound = errors.New("record not found")
	// ErrUniqueViolation is returned when an insert/update hits a unique constraint
	ErrUniqueViolation = errors.New("unique constraint violation")
	// ErrRestrictViolation is returned when a delete is blocked by a referencing row
	ErrRestrictViolation = errors.New("restrict constraint violation")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps pgx/postgres errors onto the repository sentinels so the
// services layer never inspects driver error codes.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrUniqueViolation
		case pgForeignKeyViolation:
			return ErrRestrictViolation
		}
	}
	return err
}
