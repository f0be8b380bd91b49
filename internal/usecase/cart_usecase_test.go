package usecase_test

import (
	"context"
	"sync"
	"testing"

	"pizzeria/internal/domain/model"
	infraRepo "pizzeria/internal/infra/repository"
	repo "pizzeria/internal/repository"
	"pizzeria/internal/testutil/testdb"
	"pizzeria/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type ledgerFixture struct {
	db     *gorm.DB
	cart   *usecase.CartUsecase
	orders *infraRepo.OrderGormRepository
	lines  *infraRepo.LineItemGormRepository
}

func newLedger(t *testing.T) ledgerFixture {
	t.Helper()
	db := testdb.New(t)
	orders := infraRepo.NewOrderGormRepository(db)
	lines := infraRepo.NewLineItemGormRepository(db)
	return ledgerFixture{
		db:     db,
		cart:   usecase.NewCartUsecase(infraRepo.NewTxManagerGorm(db), orders, lines),
		orders: orders,
		lines:  lines,
	}
}

func (f ledgerFixture) countOrders(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.Order{}).Count(&n).Error)
	return n
}

func (f ledgerFixture) countLines(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.LineItem{}).Count(&n).Error)
	return n
}

var session = model.SessionOwner("0123456789abcdef0123456789abcdef")

func TestCart_AddOneNTimesYieldsOneLine(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	dish := testdb.SeedDish(t, f.db, "Margherita", "8.25")

	first, err := f.cart.AddOne(ctx, session, dish.ID)
	require.NoError(t, err)
	assert.True(t, first.CreatedOrder)
	assert.EqualValues(t, 1, first.LineItem.Quantity)

	for i := 2; i <= 4; i++ {
		res, err := f.cart.AddOne(ctx, session, dish.ID)
		require.NoError(t, err)
		assert.False(t, res.CreatedOrder)
		assert.Equal(t, first.Order.ID, res.Order.ID)
		assert.EqualValues(t, i, res.LineItem.Quantity)
	}

	assert.EqualValues(t, 1, f.countOrders(t))
	assert.EqualValues(t, 1, f.countLines(t))

	sum, err := f.cart.Summary(ctx, session)
	require.NoError(t, err)
	require.Len(t, sum.Items, 1)
	assert.EqualValues(t, 4, sum.Items[0].Quantity)
	assert.Equal(t, "33.00", sum.Total)
}

func TestCart_AddUnknownDish(t *testing.T) {
	f := newLedger(t)

	_, err := f.cart.AddOne(context.Background(), session, 404)
	assert.ErrorIs(t, err, usecase.ErrDishNotFound)
	assert.Zero(t, f.countOrders(t))
}

func TestCart_AddThenRemoveRestoresState(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	pizza := testdb.SeedDish(t, f.db, "Margherita", "8.25")
	bread := testdb.SeedDish(t, f.db, "Garlic Bread", "3.10")

	// fresh owner: the order disappears again
	_, err := f.cart.AddOne(ctx, session, pizza.ID)
	require.NoError(t, err)
	outcome, err := f.cart.RemoveOne(ctx, session, pizza.ID)
	require.NoError(t, err)
	assert.Equal(t, usecase.OrderCleared, outcome)
	assert.Zero(t, f.countOrders(t))
	assert.Zero(t, f.countLines(t))

	// existing line: quantity restored
	_, err = f.cart.AddOne(ctx, session, pizza.ID)
	require.NoError(t, err)
	_, err = f.cart.AddOne(ctx, session, bread.ID)
	require.NoError(t, err)

	_, err = f.cart.AddOne(ctx, session, pizza.ID)
	require.NoError(t, err)
	outcome, err = f.cart.RemoveOne(ctx, session, pizza.ID)
	require.NoError(t, err)
	assert.Equal(t, usecase.Decremented, outcome)

	sum, err := f.cart.Summary(ctx, session)
	require.NoError(t, err)
	require.Len(t, sum.Items, 2)
	assert.EqualValues(t, 1, sum.Items[0].Quantity)
	assert.Equal(t, "11.35", sum.Total)

	// removing one of two lines keeps the order
	outcome, err = f.cart.RemoveOne(ctx, session, bread.ID)
	require.NoError(t, err)
	assert.Equal(t, usecase.ItemRemoved, outcome)
	assert.EqualValues(t, 1, f.countOrders(t))
}

func TestCart_RemoveWithoutOpenOrderDoesNothing(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	dish := testdb.SeedDish(t, f.db, "Margherita", "8.25")

	_, err := f.cart.RemoveOne(ctx, session, 5)
	assert.ErrorIs(t, err, usecase.ErrNoOpenOrder)
	assert.Zero(t, f.countOrders(t))

	// another owner's cart is untouched and invisible
	other := model.SessionOwner("ffffffffffffffffffffffffffffffff")
	_, err = f.cart.AddOne(ctx, other, dish.ID)
	require.NoError(t, err)

	_, err = f.cart.RemoveOne(ctx, session, dish.ID)
	assert.ErrorIs(t, err, usecase.ErrNoOpenOrder)
	assert.EqualValues(t, 1, f.countLines(t))
}

func TestCart_RemoveDishNotInCart(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	pizza := testdb.SeedDish(t, f.db, "Margherita", "8.25")
	bread := testdb.SeedDish(t, f.db, "Garlic Bread", "3.10")

	_, err := f.cart.AddOne(ctx, session, pizza.ID)
	require.NoError(t, err)

	_, err = f.cart.RemoveOne(ctx, session, bread.ID)
	assert.ErrorIs(t, err, usecase.ErrDishNotInCart)
	assert.EqualValues(t, 1, f.countLines(t))
}

func TestCart_ClearIsIdempotentAndAudited(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	dish := testdb.SeedDish(t, f.db, "Margherita", "8.25")

	require.NoError(t, f.cart.Clear(ctx, session))

	_, err := f.cart.AddOne(ctx, session, dish.ID)
	require.NoError(t, err)
	require.NoError(t, f.cart.Clear(ctx, session))
	assert.Zero(t, f.countOrders(t))
	assert.Zero(t, f.countLines(t))

	logs, err := infraRepo.NewAuditLogGormRepository(f.db).List(ctx, repo.AuditLogFilter{Actor: session.String()})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.AuditActionClearOrder, logs[0].Action)
	assert.Contains(t, logs[0].BeforeJSON, "Margherita")

	_, found, err := f.cart.FindOpenOrder(ctx, session)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCart_ConcurrentFirstAddsShareOneOrder(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	dish := testdb.SeedDish(t, f.db, "Margherita", "8.25")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.cart.AddOne(ctx, session, dish.ID)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, f.countOrders(t))

	order, found, err := f.cart.FindOpenOrder(ctx, session)
	require.NoError(t, err)
	require.True(t, found)
	items, err := f.lines.ListByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, 2, items[0].Quantity)
}

func TestCart_CustomerAndSessionCartsAreSeparate(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	dish := testdb.SeedDish(t, f.db, "Margherita", "8.25")
	c := testdb.SeedCustomer(t, f.db, "olena")

	_, err := f.cart.AddOne(ctx, session, dish.ID)
	require.NoError(t, err)
	res, err := f.cart.AddOne(ctx, model.CustomerOwner(c.ID), dish.ID)
	require.NoError(t, err)
	assert.True(t, res.CreatedOrder)
	assert.EqualValues(t, 2, f.countOrders(t))
}

// OrderRepository stub for states the unique indexes make unreachable.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOpenByOwner(ctx context.Context, owner model.Owner, limit int) ([]model.Order, error) {
	args := m.Called(ctx, owner, limit)
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) LockOpenByOwner(ctx context.Context, owner model.Owner, limit int) ([]model.Order, error) {
	args := m.Called(ctx, owner, limit)
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) CreateOpen(ctx context.Context, owner model.Owner) (model.Order, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *MockOrderRepository) Approve(ctx context.Context, orderID int64, d repo.DeliveryDetails) (model.Order, error) {
	args := m.Called(ctx, orderID, d)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func TestCart_FindOpenOrderReportsInvariantViolation(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("ListOpenByOwner", mock.Anything, session, 2).
		Return([]model.Order{{ID: 1}, {ID: 2}}, nil)

	cart := usecase.NewCartUsecase(nil, orders, nil)

	_, _, err := cart.FindOpenOrder(context.Background(), session)
	assert.ErrorIs(t, err, usecase.ErrMultipleOpenOrders)
	_, isHTTP := usecase.AsHTTPError(err)
	assert.False(t, isHTTP)
	orders.AssertExpectations(t)
}

// racingTx hands the ledger an Orders repo whose CreateOpen loses the race:
// a competing request's order is inserted first (unless lost is set, in
// which case the winner is gone again by the time we look).
type racingTx struct {
	inner repo.TransactionManager
	lost  bool
}

func (m racingTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return m.inner.WithinTx(ctx, func(r repo.TxRepos) error {
		return fn(racingRepos{TxRepos: r, lost: m.lost})
	})
}

type racingRepos struct {
	repo.TxRepos
	lost bool
}

func (r racingRepos) Orders() repo.OrderRepository {
	return racingOrders{OrderRepository: r.TxRepos.Orders(), lost: r.lost}
}

type racingOrders struct {
	repo.OrderRepository
	lost bool
}

func (o racingOrders) CreateOpen(ctx context.Context, owner model.Owner) (model.Order, error) {
	if !o.lost {
		if _, err := o.OrderRepository.CreateOpen(ctx, owner); err != nil {
			return model.Order{}, err
		}
	}
	return model.Order{}, repo.ErrDuplicate
}

func TestCart_AddOneReusesOrderWhenInsertLosesRace(t *testing.T) {
	f := newLedger(t)
	pizza := testdb.SeedDish(t, f.db, "Margherita", "8.25")
	cart := usecase.NewCartUsecase(racingTx{inner: infraRepo.NewTxManagerGorm(f.db)}, f.orders, f.lines)

	res, err := cart.AddOne(context.Background(), session, pizza.ID)
	require.NoError(t, err)
	assert.False(t, res.CreatedOrder)
	assert.EqualValues(t, 1, res.LineItem.Quantity)
	assert.NotZero(t, res.Order.ID)

	assert.EqualValues(t, 1, f.countOrders(t))
	assert.EqualValues(t, 1, f.countLines(t))
}

func TestCart_AddOneFailsWhenRaceWinnerVanished(t *testing.T) {
	f := newLedger(t)
	pizza := testdb.SeedDish(t, f.db, "Margherita", "8.25")
	cart := usecase.NewCartUsecase(racingTx{inner: infraRepo.NewTxManagerGorm(f.db), lost: true}, f.orders, f.lines)

	_, err := cart.AddOne(context.Background(), session, pizza.ID)
	require.Error(t, err)
	assert.ErrorContains(t, err, "vanished after duplicate insert")
	assert.NotErrorIs(t, err, usecase.ErrNoOpenOrder)

	assert.Zero(t, f.countOrders(t))
	assert.Zero(t, f.countLines(t))
}
