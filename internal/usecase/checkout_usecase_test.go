package usecase_test

import (
	"context"
	"testing"
	"time"

	"pizzeria/internal/domain/model"
	infraRepo "pizzeria/internal/infra/repository"
	repo "pizzeria/internal/repository"
	"pizzeria/internal/testutil/testdb"
	"pizzeria/internal/usecase"
	"pizzeria/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type checkoutFixture struct {
	ledgerFixture
	checkout *usecase.CheckoutUsecase
	now      time.Time
	loc      *time.Location
}

func newCheckout(t *testing.T) checkoutFixture {
	t.Helper()
	f := newLedger(t)

	loc, err := time.LoadLocation("Europe/Kyiv")
	require.NoError(t, err)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	uc := usecase.NewCheckoutUsecase(
		infraRepo.NewTxManagerGorm(f.db),
		f.cart,
		infraRepo.NewCustomerGormRepository(f.db),
		validator.NewCheckoutValidator(loc, 30*time.Minute),
		fixedClock{now},
		loc,
		30*time.Minute,
	)
	return checkoutFixture{ledgerFixture: f, checkout: uc, now: now, loc: loc}
}

func (f checkoutFixture) input(after time.Duration) usecase.CheckoutInput {
	return usecase.CheckoutInput{
		Name:                "John Smith",
		PhoneNumber:         "+12125552368",
		Email:               "john@example.com",
		Address:             "123 Main Streetasd",
		RequestedDeliveryAt: f.now.Add(after).In(f.loc).Format("2006-01-02T15:04"),
	}
}

func TestCheckout_SubmitApprovesOpenOrder(t *testing.T) {
	f := newCheckout(t)
	ctx := context.Background()
	dish := testdb.SeedDish(t, f.db, "Margherita", "8.25")

	_, err := f.cart.AddOne(ctx, session, dish.ID)
	require.NoError(t, err)
	_, err = f.cart.AddOne(ctx, session, dish.ID)
	require.NoError(t, err)

	out, err := f.checkout.Submit(ctx, session, f.input(31*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, string(model.OrderStatusApproved), out.Status)
	require.NotNil(t, out.PhoneNumber)
	assert.Equal(t, "+12125552368", *out.PhoneNumber)
	assert.Equal(t, "16.50", out.Cart.Total)
	require.NotNil(t, out.RequestedDeliveryAt)
	assert.True(t, out.RequestedDeliveryAt.Equal(f.now.Add(31*time.Minute)))

	// the cart is empty again
	_, found, err := f.cart.FindOpenOrder(ctx, session)
	require.NoError(t, err)
	assert.False(t, found)

	logs, err := infraRepo.NewAuditLogGormRepository(f.db).List(ctx, repo.AuditLogFilter{Actor: session.String()})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.AuditActionApproveOrder, logs[0].Action)
	assert.Contains(t, logs[0].BeforeJSON, `"status":"created"`)
	assert.Contains(t, logs[0].AfterJSON, `"status":"approved"`)
}

func TestCheckout_LeadTimeBoundary(t *testing.T) {
	f := newCheckout(t)
	ctx := context.Background()
	dish := testdb.SeedDish(t, f.db, "Margherita", "8.25")
	_, err := f.cart.AddOne(ctx, session, dish.ID)
	require.NoError(t, err)

	_, err = f.checkout.Submit(ctx, session, f.input(29*time.Minute))
	ve, ok := validator.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Time should be at least 30 minutes from now"}, ve.Fields()["requested_delivery_at"])

	// still open after the failed attempt
	_, found, err := f.cart.FindOpenOrder(ctx, session)
	require.NoError(t, err)
	assert.True(t, found)

	_, err = f.checkout.Submit(ctx, session, f.input(31*time.Minute))
	require.NoError(t, err)
}

func TestCheckout_AddressRules(t *testing.T) {
	f := newCheckout(t)
	ctx := context.Background()
	dish := testdb.SeedDish(t, f.db, "Margherita", "8.25")
	_, err := f.cart.AddOne(ctx, session, dish.ID)
	require.NoError(t, err)

	in := f.input(time.Hour)
	in.Address = "12 A St"
	_, err = f.checkout.Submit(ctx, session, in)
	ve, ok := validator.AsValidationErrors(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields(), "address")

	in.Address = "123 Main Streetasd"
	_, err = f.checkout.Submit(ctx, session, in)
	assert.NoError(t, err)
}

func TestCheckout_RequiresOpenOrder(t *testing.T) {
	f := newCheckout(t)

	_, err := f.checkout.Submit(context.Background(), session, f.input(time.Hour))
	assert.ErrorIs(t, err, usecase.ErrNoOpenOrder)

	_, err = f.checkout.Form(context.Background(), session)
	assert.ErrorIs(t, err, usecase.ErrNoOpenOrder)
}

func TestCheckout_FormPrefillsFromCustomer(t *testing.T) {
	f := newCheckout(t)
	ctx := context.Background()
	dish := testdb.SeedDish(t, f.db, "Margherita", "8.25")

	phone := "+12125552368"
	addr := "42 Baker Street London"
	c := model.Customer{
		Username: "anna", Email: "anna@example.com", PasswordHash: "!",
		FirstName: "Anna", LastName: "Lee", PhoneNumber: &phone, Address: &addr, IsActive: true,
	}
	require.NoError(t, f.db.Create(&c).Error)
	owner := model.CustomerOwner(c.ID)

	_, err := f.cart.AddOne(ctx, owner, dish.ID)
	require.NoError(t, err)

	form, err := f.checkout.Form(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "Anna Lee", form.Name)
	assert.Equal(t, phone, form.PhoneNumber)
	assert.Equal(t, addr, form.Address)
	assert.Equal(t, "anna@example.com", form.Email)
	// 10:00 UTC is 12:00 in Kyiv; +30m lead +3m to fill the form
	assert.Equal(t, "2026-03-01T12:33", form.RequestedDeliveryAt)
	assert.Equal(t, "8.25", form.Cart.Total)
}
