package repository

import (
	"context"

	"pizzeria/internal/domain/model"
)

type LineItemRepository interface {
	// IncrementOrCreate adds one of dishID: bumps an existing line or creates it at 1.
	IncrementOrCreate(ctx context.Context, orderID int64, dishID int64) (model.LineItem, error)
	// FindByOrderAndDish locks the row. ErrNotFound when the dish is not in the order.
	FindByOrderAndDish(ctx context.Context, orderID int64, dishID int64) (model.LineItem, error)
	UpdateQuantity(ctx context.Context, lineItemID int64, qty int64) error
	DeleteByID(ctx context.Context, lineItemID int64) error
	CountByOrderID(ctx context.Context, orderID int64) (int64, error)
	// ListByOrderID loads Dish on every line.
	ListByOrderID(ctx context.Context, orderID int64) ([]model.LineItem, error)
}
