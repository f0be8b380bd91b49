package repository

import (
	"context"
	"strings"

	"pizzeria/internal/domain/model"
	repo "pizzeria/internal/repository"

	"gorm.io/gorm"
)

type DishGormRepository struct {
	db *gorm.DB
}

// DI
func NewDishGormRepository(db *gorm.DB) *DishGormRepository {
	return &DishGormRepository{db: db}
}

// List filters by name, sorts by price and pages.
func (r *DishGormRepository) List(ctx context.Context, q repo.DishListQuery) ([]model.Dish, int64, error) {
	var dishes []model.Dish
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Dish{})

	if name := strings.TrimSpace(q.Name); name != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Dish{}, 0, err
	}

	switch q.Sort {
	case "asc":
		tx = tx.Order("price asc").Order("id asc")
	case "desc":
		tx = tx.Order("price desc").Order("id desc")
	default:
		tx = tx.Order("name asc").Order("id asc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&dishes).Error; err != nil {
		return []model.Dish{}, 0, err
	}

	return dishes, total, nil
}

func (r *DishGormRepository) FindByID(ctx context.Context, id int64) (model.Dish, error) {
	var d model.Dish
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return model.Dish{}, translate(err)
	}
	return d, nil
}

func (r *DishGormRepository) FindDetail(ctx context.Context, id int64) (model.Dish, error) {
	var d model.Dish
	err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Ingredients.Ingredient").
		First(&d, id).Error
	if err != nil {
		return model.Dish{}, translate(err)
	}
	return d, nil
}
