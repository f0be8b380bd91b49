package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"pizzeria/internal/domain/model"
	"pizzeria/internal/domain/pricing"
	repo "pizzeria/internal/repository"
)

// RemovalOutcome reports what RemoveOne did to the cart.
type RemovalOutcome int

const (
	// quantity went down by one
	Decremented RemovalOutcome = iota + 1
	// the line reached zero and was deleted
	ItemRemoved
	// the last line was deleted, so was the order
	OrderCleared
)

func (o RemovalOutcome) String() string {
	switch o {
	case Decremented:
		return "decremented"
	case ItemRemoved:
		return "item_removed"
	case OrderCleared:
		return "order_cleared"
	default:
		return "unknown"
	}
}

type AddOneResult struct {
	Order        model.Order
	LineItem     model.LineItem
	CreatedOrder bool
}

type CartLineOutput struct {
	DishID    int64  `json:"dish_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	LinePrice string `json:"line_price"`
}

// CartSummary is the owner's open order as shown next to the catalog.
type CartSummary struct {
	OrderID *int64           `json:"order_id"`
	Items   []CartLineOutput `json:"items"`
	Total   string           `json:"total"`
}

// CartUsecase is the cart ledger. Every mutation goes through
// find-or-create-by-owner inside one transaction so an owner never ends
// up with two created orders.
type CartUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	lineItems repo.LineItemRepository
}

// DI
func NewCartUsecase(tx repo.TransactionManager, orders repo.OrderRepository, lineItems repo.LineItemRepository) *CartUsecase {
	return &CartUsecase{
		tx:        tx,
		orders:    orders,
		lineItems: lineItems,
	}
}

// FindOpenOrder returns the owner's created order, if any.
func (u *CartUsecase) FindOpenOrder(ctx context.Context, owner model.Owner) (model.Order, bool, error) {
	if owner.IsZero() {
		return model.Order{}, false, nil
	}
	orders, err := u.orders.ListOpenByOwner(ctx, owner, 2)
	if err != nil {
		return model.Order{}, false, err
	}
	return singleOpen(owner, orders)
}

// AddOne puts one more of dishID in the owner's cart, creating the order
// and line item as needed.
func (u *CartUsecase) AddOne(ctx context.Context, owner model.Owner, dishID int64) (AddOneResult, error) {
	if owner.IsZero() {
		return AddOneResult{}, errors.New("cart owner is required")
	}

	var out AddOneResult
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := lookupDish(ctx, r.Dishes(), dishID); err != nil {
			return err
		}

		order, created, err := lockOrCreateOpen(ctx, r.Orders(), owner)
		if err != nil {
			return err
		}

		line, err := r.LineItems().IncrementOrCreate(ctx, order.ID, dishID)
		if err != nil {
			return fmt.Errorf("increment line item: %w", err)
		}

		out = AddOneResult{Order: order, LineItem: line, CreatedOrder: created}
		return nil
	})
	if err != nil {
		return AddOneResult{}, err
	}
	return out, nil
}

// RemoveOne takes one of dishID out of the owner's cart. Failures leave
// the store untouched.
func (u *CartUsecase) RemoveOne(ctx context.Context, owner model.Owner, dishID int64) (RemovalOutcome, error) {
	if owner.IsZero() {
		return 0, ErrNoOpenOrder
	}

	var outcome RemovalOutcome
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, found, err := lockOpen(ctx, r.Orders(), owner)
		if err != nil {
			return err
		}
		if !found {
			return ErrNoOpenOrder
		}

		line, err := r.LineItems().FindByOrderAndDish(ctx, order.ID, dishID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrDishNotInCart
		}
		if err != nil {
			return err
		}

		if line.Quantity > 1 {
			if err := r.LineItems().UpdateQuantity(ctx, line.ID, line.Quantity-1); err != nil {
				return err
			}
			outcome = Decremented
			return nil
		}

		if err := r.LineItems().DeleteByID(ctx, line.ID); err != nil {
			return err
		}
		left, err := r.LineItems().CountByOrderID(ctx, order.ID)
		if err != nil {
			return err
		}
		if left > 0 {
			outcome = ItemRemoved
			return nil
		}

		if err := r.Orders().Delete(ctx, order.ID); err != nil {
			return err
		}
		outcome = OrderCleared
		return nil
	})
	if err != nil {
		return 0, err
	}
	return outcome, nil
}

// Clear deletes the owner's open order. No open order is a no-op.
// The deleted cart is kept in the audit log.
func (u *CartUsecase) Clear(ctx context.Context, owner model.Owner) error {
	if owner.IsZero() {
		return nil
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, found, err := lockOpen(ctx, r.Orders(), owner)
		if err != nil {
			return err
		}
		if !found {
			return nil
		}

		lines, err := r.LineItems().ListByOrderID(ctx, order.ID)
		if err != nil {
			return err
		}
		before, err := json.Marshal(toCartSummary(&order, lines))
		if err != nil {
			return err
		}

		if err := r.Orders().Delete(ctx, order.ID); err != nil {
			return err
		}

		return r.AuditLogs().Create(ctx, model.AuditLog{
			Actor:        owner.String(),
			Action:       model.AuditActionClearOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   order.ID,
			BeforeJSON:   string(before),
			AfterJSON:    "null",
		})
	})
}

// Summary lists the open order's lines with prices; an empty cart totals 0.00.
func (u *CartUsecase) Summary(ctx context.Context, owner model.Owner) (CartSummary, error) {
	order, found, err := u.FindOpenOrder(ctx, owner)
	if err != nil {
		return CartSummary{}, err
	}
	if !found {
		return toCartSummary(nil, nil), nil
	}

	lines, err := u.lineItems.ListByOrderID(ctx, order.ID)
	if err != nil {
		return CartSummary{}, err
	}
	return toCartSummary(&order, lines), nil
}

func toCartSummary(order *model.Order, lines []model.LineItem) CartSummary {
	out := CartSummary{
		Items: make([]CartLineOutput, 0, len(lines)),
		Total: pricing.Format(pricing.TotalFor(lines)),
	}
	if order != nil {
		id := order.ID
		out.OrderID = &id
	}
	for _, li := range lines {
		out.Items = append(out.Items, CartLineOutput{
			DishID:    li.DishID,
			Name:      li.Dish.Name,
			Quantity:  li.Quantity,
			LinePrice: pricing.Format(pricing.LineTotal(li)),
		})
	}
	return out
}

func singleOpen(owner model.Owner, orders []model.Order) (model.Order, bool, error) {
	switch len(orders) {
	case 0:
		return model.Order{}, false, nil
	case 1:
		return orders[0], true, nil
	default:
		return model.Order{}, false, fmt.Errorf("%w: %s", ErrMultipleOpenOrders, owner)
	}
}

func lockOpen(ctx context.Context, orders repo.OrderRepository, owner model.Owner) (model.Order, bool, error) {
	found, err := orders.LockOpenByOwner(ctx, owner, 2)
	if err != nil {
		return model.Order{}, false, err
	}
	return singleOpen(owner, found)
}

// lockOrCreateOpen returns the owner's open order locked for update. When a
// concurrent request wins the insert, its row is re-read instead.
func lockOrCreateOpen(ctx context.Context, orders repo.OrderRepository, owner model.Owner) (model.Order, bool, error) {
	order, found, err := lockOpen(ctx, orders, owner)
	if err != nil {
		return model.Order{}, false, err
	}
	if found {
		return order, false, nil
	}

	order, err = orders.CreateOpen(ctx, owner)
	if err == nil {
		return order, true, nil
	}
	if !errors.Is(err, repo.ErrDuplicate) {
		return model.Order{}, false, fmt.Errorf("create open order: %w", err)
	}

	order, found, err = lockOpen(ctx, orders, owner)
	if err != nil {
		return model.Order{}, false, err
	}
	if !found {
		return model.Order{}, false, fmt.Errorf("open order for %s vanished after duplicate insert", owner)
	}
	return order, false, nil
}
