package repository

import (
	"context"

	"pizzeria/internal/domain/model"
)

// User directory storage.
type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	// FindByID returns ErrNotFound when absent.
	FindByID(ctx context.Context, id int64) (*model.Customer, error)
	// FindByUsername returns ErrNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
}
