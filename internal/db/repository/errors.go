package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a lookup or delete matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidReference is returned when a write points at a missing category.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

const pgForeignKeyViolation = "23503"

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return ErrInvalidReference
	}
	return err
}
