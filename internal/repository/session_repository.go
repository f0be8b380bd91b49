package repository

import (
	"context"
	"time"

	"pizzeria/internal/domain/model"
)

type SessionRepository interface {
	Create(ctx context.Context, s model.Session) error
	// FindValid returns ErrNotFound for unknown or expired keys.
	FindValid(ctx context.Context, key string, now time.Time) (model.Session, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
