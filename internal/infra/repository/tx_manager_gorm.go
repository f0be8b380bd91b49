package repository

import (
	"context"
	"database/sql"

	repo "pizzeria/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders    repo.OrderRepository
	lineItems repo.LineItemRepository
	dishes    repo.DishRepository
	auditLogs repo.AuditLogRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository { return r.orders }
func (r *txReposGorm) LineItems() repo.LineItemRepository { return r.lineItems }
func (r *txReposGorm) Dishes() repo.DishRepository { return r.dishes }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository { return r.auditLogs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// WithinTx runs fn in a read-committed transaction.
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// repos are rebuilt on the tx handle
		r := &txReposGorm{
			orders:    NewOrderGormRepository(tx),
			lineItems: NewLineItemGormRepository(tx),
			dishes:    NewDishGormRepository(tx),
			auditLogs: NewAuditLogGormRepository(tx),
		}
		return fn(r)
	}, txOptions(tm.db))
}

// sqlite only knows serializable; postgres gets read committed explicitly.
func txOptions(db *gorm.DB) *sql.TxOptions {
	if db.Dialector.Name() == "postgres" {
		return &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	}
	return nil
}
