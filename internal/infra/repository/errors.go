package repository

import (
	"errors"

	repo "pizzeria/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// postgres unique_violation
const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// translate maps driver errors onto repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repo.ErrNotFound
	case isUniqueViolation(err):
		return repo.ErrDuplicate
	default:
		return err
	}
}
