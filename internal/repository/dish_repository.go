package repository

import (
	"context"

	"pizzeria/internal/domain/model"
)

// DishListQuery drives the catalog index.
type DishListQuery struct {
	Page  int
	Limit int
	Name  string
	// asc / desc by price; anything else sorts by name
	Sort string
}

// Catalog store: read access to dishes.
type DishRepository interface {
	List(ctx context.Context, q DishListQuery) ([]model.Dish, int64, error)
	FindByID(ctx context.Context, id int64) (model.Dish, error)
	// FindDetail also loads ingredients.
	FindDetail(ctx context.Context, id int64) (model.Dish, error)
}
