package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"pizzeria/internal/domain/model"
	repo "pizzeria/internal/repository"
)

// Raw delivery form values as submitted.
type CheckoutInput struct {
	Name                string
	PhoneNumber         string
	Email               string
	Address             string
	RequestedDeliveryAt string
}

// CheckoutValidator cleans the form or returns field-scoped errors.
// The validator package implements it.
type CheckoutValidator interface {
	ValidateCheckout(in CheckoutInput, now time.Time) (repo.DeliveryDetails, error)
}

type OrderOutput struct {
	ID                  int64       `json:"id"`
	Status              string      `json:"status"`
	Name                *string     `json:"name"`
	PhoneNumber         *string     `json:"phone_number"`
	Email               *string     `json:"email"`
	Address             *string     `json:"address"`
	RequestedDeliveryAt *time.Time  `json:"requested_delivery_at"`
	Cart                CartSummary `json:"cart"`
}

// CheckoutForm holds the initial form values plus the cart being ordered.
type CheckoutForm struct {
	Name                string      `json:"name"`
	PhoneNumber         string      `json:"phone_number"`
	Email               string      `json:"email"`
	Address             string      `json:"address"`
	RequestedDeliveryAt string      `json:"requested_delivery_at"`
	Cart                CartSummary `json:"cart"`
}

// form-fill allowance on top of the lead time
const formFillTime = 3 * time.Minute

// datetime-local layout
const deliveryTimeLayout = "2006-01-02T15:04"

type CheckoutUsecase struct {
	tx        repo.TransactionManager
	cart      *CartUsecase
	customers repo.CustomerRepository
	validator CheckoutValidator
	clock     Clock
	loc       *time.Location
	lead      time.Duration
}

// DI
func NewCheckoutUsecase(
	tx repo.TransactionManager,
	cart *CartUsecase,
	customers repo.CustomerRepository,
	validator CheckoutValidator,
	clock Clock,
	loc *time.Location,
	lead time.Duration,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:        tx,
		cart:      cart,
		customers: customers,
		validator: validator,
		clock:     clock,
		loc:       loc,
		lead:      lead,
	}
}

// Form returns the initial checkout values. ErrNoOpenOrder when the cart is empty.
func (u *CheckoutUsecase) Form(ctx context.Context, owner model.Owner) (CheckoutForm, error) {
	summary, err := u.cart.Summary(ctx, owner)
	if err != nil {
		return CheckoutForm{}, err
	}
	if summary.OrderID == nil {
		return CheckoutForm{}, ErrNoOpenOrder
	}

	initial := u.clock.Now().In(u.loc).Add(u.lead + formFillTime)
	form := CheckoutForm{
		RequestedDeliveryAt: initial.Format(deliveryTimeLayout),
		Cart:                summary,
	}

	id, ok := owner.CustomerID()
	if !ok {
		return form, nil
	}
	c, err := u.customers.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return form, nil
	}
	if err != nil {
		return CheckoutForm{}, err
	}
	form.Name = c.FullName()
	form.Email = c.Email
	if c.PhoneNumber != nil {
		form.PhoneNumber = *c.PhoneNumber
	}
	if c.Address != nil {
		form.Address = *c.Address
	}
	return form, nil
}

// Submit validates the delivery fields and approves the owner's open order.
// All field errors are reported together; the cart is checked only after
// the fields pass.
func (u *CheckoutUsecase) Submit(ctx context.Context, owner model.Owner, in CheckoutInput) (OrderOutput, error) {
	details, err := u.validator.ValidateCheckout(in, u.clock.Now())
	if err != nil {
		return OrderOutput{}, err
	}
	if owner.IsZero() {
		return OrderOutput{}, ErrNoOpenOrder
	}

	var out OrderOutput
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, found, err := lockOpen(ctx, r.Orders(), owner)
		if err != nil {
			return err
		}
		if !found {
			return ErrNoOpenOrder
		}

		lines, err := r.LineItems().ListByOrderID(ctx, order.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrNoOpenOrder
		}

		approved, err := r.Orders().Approve(ctx, order.ID, details)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNoOpenOrder
		}
		if err != nil {
			return err
		}

		out = toOrderOutput(approved, lines)

		before, err := json.Marshal(toOrderOutput(order, lines))
		if err != nil {
			return err
		}
		after, err := json.Marshal(out)
		if err != nil {
			return err
		}
		return r.AuditLogs().Create(ctx, model.AuditLog{
			Actor:        owner.String(),
			Action:       model.AuditActionApproveOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   order.ID,
			BeforeJSON:   string(before),
			AfterJSON:    string(after),
		})
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, lines []model.LineItem) OrderOutput {
	return OrderOutput{
		ID:                  o.ID,
		Status:              string(o.Status),
		Name:                o.Name,
		PhoneNumber:         o.PhoneNumber,
		Email:               o.Email,
		Address:             o.Address,
		RequestedDeliveryAt: o.RequestedDeliveryAt,
		Cart:                toCartSummary(&o, lines),
	}
}
