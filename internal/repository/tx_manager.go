package repository

import "context"

// Repositories bound to one transaction.
type TxRepos interface {
	Orders() OrderRepository
	LineItems() LineItemRepository
	Dishes() DishRepository
	AuditLogs() AuditLogRepository
}

// TransactionManager hides begin/commit/rollback from usecases.
// fn's error rolls the transaction back.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
