package repository

import (
	"context"
	"testing"
	"time"

	"pizzeria/internal/domain/model"
	repo "pizzeria/internal/repository"
	"pizzeria/internal/testutil/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogGorm_OrderHistory(t *testing.T) {
	db := testdb.New(t)
	r := NewAuditLogGormRepository(db)
	ctx := context.Background()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entry := func(actor string, action model.AuditAction, orderID int64, minute int) model.AuditLog {
		return model.AuditLog{
			Actor:        actor,
			Action:       action,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			CreatedAt:    at.Add(time.Duration(minute) * time.Minute),
		}
	}
	require.NoError(t, r.Create(ctx, entry("customer:1", model.AuditActionClearOrder, 10, 0)))
	require.NoError(t, r.Create(ctx, entry("customer:1", model.AuditActionApproveOrder, 11, 5)))
	require.NoError(t, r.Create(ctx, entry("customer:2", model.AuditActionApproveOrder, 12, 6)))
	require.NoError(t, r.Create(ctx, model.AuditLog{
		Actor: "customer:1", Action: "RENAME", ResourceType: "dish", ResourceID: 11, CreatedAt: at,
	}))

	logs, err := r.List(ctx, repo.AuditLogFilter{Actor: "customer:1"})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.EqualValues(t, 11, logs[0].ResourceID)
	assert.EqualValues(t, 10, logs[1].ResourceID)

	order := int64(11)
	logs, err = r.List(ctx, repo.AuditLogFilter{OrderID: &order})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.AuditActionApproveOrder, logs[0].Action)

	logs, err = r.List(ctx, repo.AuditLogFilter{Actions: []model.AuditAction{model.AuditActionApproveOrder}})
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	logs, err = r.List(ctx, repo.AuditLogFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.EqualValues(t, 11, logs[0].ResourceID)
}
