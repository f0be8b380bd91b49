package repository

import (
	"context"
	"time"

	"pizzeria/internal/domain/model"
	repo "pizzeria/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionGormRepository struct {
	db *gorm.DB
}

func NewSessionGormRepository(db *gorm.DB) *SessionGormRepository {
	return &SessionGormRepository{db: db}
}

func (r *SessionGormRepository) Create(ctx context.Context, s model.Session) error {
	return translate(r.db.WithContext(ctx).Create(&s).Error)
}

func (r *SessionGormRepository) FindValid(ctx context.Context, key string, now time.Time) (model.Session, error) {
	var s model.Session
	err := r.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).
		Where("expires_at > ?", now).
		First(&s).Error
	if err != nil {
		return model.Session{}, translate(err)
	}
	return s, nil
}

func (r *SessionGormRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&model.Session{})
	return res.RowsAffected, res.Error
}

var _ repo.SessionRepository = (*SessionGormRepository)(nil)
