package repository

import (
	"context"

	"pizzeria/internal/domain/model"
	repo "pizzeria/internal/repository"

	"gorm.io/gorm"
)

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

type auditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) repo.AuditLogRepository {
	return &auditLogGormRepository{db: db}
}

func (r *auditLogGormRepository) Create(ctx context.Context, log model.AuditLog) error {
	return r.db.WithContext(ctx).Create(&log).Error
}

func (r *auditLogGormRepository) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	err := r.db.WithContext(ctx).
		Where("resource_type = ?", model.AuditResourceOrder).
		Scopes(byActor(f.Actor), byActions(f.Actions), byOrder(f.OrderID), paginate(f.Limit, f.Offset)).
		Order("created_at DESC, id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func byActor(actor string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if actor == "" {
			return q
		}
		return q.Where("actor = ?", actor)
	}
}

func byActions(actions []model.AuditAction) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if len(actions) == 0 {
			return q
		}
		return q.Where("action IN ?", actions)
	}
}

func byOrder(orderID *int64) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if orderID == nil {
			return q
		}
		return q.Where("resource_id = ?", *orderID)
	}
}

func paginate(limit, offset int) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if limit <= 0 || limit > auditMaxLimit {
			limit = auditDefaultLimit
		}
		if offset < 0 {
			offset = 0
		}
		return q.Limit(limit).Offset(offset)
	}
}
