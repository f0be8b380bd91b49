package repository

import (
	"context"
	"errors"

	"pizzeria/internal/domain/model"
	repo "pizzeria/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LineItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewLineItemGormRepository(db *gorm.DB) *LineItemGormRepository {
	return &LineItemGormRepository{db: db}
}

// Lock the existing line or create it at quantity 1.
func (r *LineItemGormRepository) IncrementOrCreate(ctx context.Context, orderID int64, dishID int64) (model.LineItem, error) {
	var out model.LineItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.LineItem

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_id = ? AND dish_id = ?", orderID, dishID).
			First(&item).Error

		if err == nil {
			res := tx.Model(&model.LineItem{}).
				Where("id = ?", item.ID).
				Update("quantity", gorm.Expr("quantity + ?", 1))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}
			item.Quantity++
			out = item
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		newItem := model.LineItem{
			OrderID:  orderID,
			DishID:   dishID,
			Quantity: 1,
		}
		if err := tx.Create(&newItem).Error; err != nil {
			return err
		}
		out = newItem
		return nil
	})
	if err != nil {
		return model.LineItem{}, translate(err)
	}
	return out, nil
}

func (r *LineItemGormRepository) FindByOrderAndDish(ctx context.Context, orderID int64, dishID int64) (model.LineItem, error) {
	var item model.LineItem

	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ? AND dish_id = ?", orderID, dishID).
		First(&item).Error
	if err != nil {
		return model.LineItem{}, translate(err)
	}
	return item, nil
}

// UpdateQuantity rejects qty < 1; callers delete instead.
func (r *LineItemGormRepository) UpdateQuantity(ctx context.Context, lineItemID int64, qty int64) error {
	if qty < 1 {
		return errors.New("invalid quantity")
	}

	res := r.db.WithContext(ctx).
		Model(&model.LineItem{}).
		Where("id = ?", lineItemID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *LineItemGormRepository) DeleteByID(ctx context.Context, lineItemID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.LineItem{}, lineItemID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *LineItemGormRepository) CountByOrderID(ctx context.Context, orderID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.LineItem{}).
		Where("order_id = ?", orderID).
		Count(&n).Error
	return n, err
}

func (r *LineItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.LineItem, error) {
	var items []model.LineItem

	if err := r.db.WithContext(ctx).
		Preload("Dish").
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.LineItem{}, err
	}
	return items, nil
}
