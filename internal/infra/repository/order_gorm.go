package repository

import (
	"context"
	"errors"

	"pizzeria/internal/domain/model"
	repo "pizzeria/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if err != nil {
		return model.Order{}, translate(err)
	}
	return o, nil
}

func (r *OrderGormRepository) ListOpenByOwner(ctx context.Context, owner model.Owner, limit int) ([]model.Order, error) {
	return r.listOpen(r.db.WithContext(ctx), owner, limit)
}

func (r *OrderGormRepository) LockOpenByOwner(ctx context.Context, owner model.Owner, limit int) ([]model.Order, error) {
	return r.listOpen(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), owner, limit)
}

func (r *OrderGormRepository) listOpen(q *gorm.DB, owner model.Owner, limit int) ([]model.Order, error) {
	q, err := whereOwner(q, owner)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 2
	}

	var orders []model.Order
	if err := q.
		Where("status = ?", model.OrderStatusCreated).
		Order("id asc").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOpen runs the insert in a savepoint so that a unique violation does
// not poison the caller's transaction (postgres aborts it otherwise).
func (r *OrderGormRepository) CreateOpen(ctx context.Context, owner model.Owner) (model.Order, error) {
	if owner.IsZero() {
		return model.Order{}, errors.New("order owner is required")
	}

	o := model.Order{Status: model.OrderStatusCreated}
	owner.Assign(&o)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&o).Error
	})
	if err != nil {
		return model.Order{}, translate(err)
	}
	return o, nil
}

func (r *OrderGormRepository) Approve(ctx context.Context, orderID int64, d repo.DeliveryDetails) (model.Order, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, model.OrderStatusCreated).
		Updates(map[string]interface{}{
			"status":                model.OrderStatusApproved,
			"name":                  d.Name,
			"phone_number":          d.PhoneNumber,
			"email":                 d.Email,
			"address":               d.Address,
			"requested_delivery_at": d.RequestedDeliveryAt,
		})
	if res.Error != nil {
		return model.Order{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Order{}, repo.ErrNotFound
	}
	return r.FindByID(ctx, orderID)
}

// Delete removes the order together with its line items.
func (r *OrderGormRepository) Delete(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&model.LineItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Order{}, orderID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}

func whereOwner(q *gorm.DB, owner model.Owner) (*gorm.DB, error) {
	if id, ok := owner.CustomerID(); ok {
		return q.Where("customer_id = ?", id), nil
	}
	if key, ok := owner.SessionKey(); ok {
		return q.Where("session_key = ? AND customer_id IS NULL", key), nil
	}
	return nil, errors.New("order owner is required")
}
