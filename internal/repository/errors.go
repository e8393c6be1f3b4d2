package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrListingNotFound   = errors.New("listing not found")
	ErrCriteriaNotFound  = errors.New("criteria not found")
	ErrNoFieldsToUpdate  = errors.New("no fields to update")
	ErrReferenceNotFound = errors.New("referenced record not found")
)

// IsForeignKeyViolation — нарушение внешнего ключа (23503).
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
