package repository

import (
	"context"
	"time"

	"pizzeria/internal/domain/model"
)

// DeliveryDetails are written on checkout.
type DeliveryDetails struct {
	Name                string
	PhoneNumber         string
	Email               *string
	Address             string
	RequestedDeliveryAt time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	// ListOpenByOwner returns the owner's created orders, at most limit rows.
	ListOpenByOwner(ctx context.Context, owner model.Owner, limit int) ([]model.Order, error)
	// LockOpenByOwner is ListOpenByOwner with SELECT ... FOR UPDATE.
	LockOpenByOwner(ctx context.Context, owner model.Owner, limit int) ([]model.Order, error)

	// CreateOpen inserts a created order for owner. ErrDuplicate if the owner
	// already has one; the surrounding transaction stays usable.
	CreateOpen(ctx context.Context, owner model.Owner) (model.Order, error)

	// Approve sets delivery details and moves a created order to approved.
	// ErrNotFound if the order is gone or no longer created.
	Approve(ctx context.Context, orderID int64, d DeliveryDetails) (model.Order, error)

	// Delete removes the order and its line items.
	Delete(ctx context.Context, orderID int64) error
}
