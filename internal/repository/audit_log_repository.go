package repository

import (
	"context"

	"pizzeria/internal/domain/model"
)

// AuditLogFilter selects order history entries. Empty fields match all.
type AuditLogFilter struct {
	Actor   string
	Actions []model.AuditAction
	OrderID *int64
	Limit   int
	Offset  int
}

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	// List returns order entries newest first.
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
