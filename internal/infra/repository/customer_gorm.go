package repository

import (
	"context"

	"pizzeria/internal/domain/model"
	domainrepo "pizzeria/internal/repository"

	"gorm.io/gorm"
)

type customerGormRepository struct {
	db *gorm.DB
}

// DI
func NewCustomerGormRepository(db *gorm.DB) domainrepo.CustomerRepository {
	return &customerGormRepository{db: db}
}

func (r *customerGormRepository) Create(ctx context.Context, c *model.Customer) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *customerGormRepository) FindByUsername(ctx context.Context, username string) (*model.Customer, error) {
	var c model.Customer

	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&c).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *customerGormRepository) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	var c model.Customer

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *customerGormRepository) Update(ctx context.Context, c *model.Customer) error {
	return translate(r.db.WithContext(ctx).Save(c).Error)
}
