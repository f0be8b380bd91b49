package handler

import (
	"net/http"
	"strconv"
	"strings"

	"pizzeria/internal/middleware"
	"pizzeria/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	actionAddOne    = "add_one"
	actionRemoveOne = "remove_one"
)

// cart buttons
type CartHandler struct {
	cart    *usecase.CartUsecase
	catalog *usecase.CatalogUsecase
	log     *zap.Logger
}

// DI
func NewCartHandler(cart *usecase.CartUsecase, catalog *usecase.CatalogUsecase, log *zap.Logger) *CartHandler {
	return &CartHandler{cart: cart, catalog: catalog, log: log}
}

type addRemoveDishRequest struct {
	Action string `json:"action" form:"action"`
	DishID string `json:"dish_id" form:"dish_id"`
}

type CartActionResponse struct {
	Message  string `json:"message"`
	Outcome  string `json:"outcome"`
	OrderID  *int64 `json:"order_id,omitempty"`
	Quantity *int64 `json:"quantity,omitempty"`
}

func (h *CartHandler) RegisterRoutes(g *echo.Group) {
	// any method reaches the handler so non-POST gets the 400 body
	g.Any("/order/add_remove_dish", h.addRemoveDish)
	g.Any("/order/add_remove_dish/", h.addRemoveDish)
	g.Match([]string{http.MethodGet, http.MethodPost}, "/order/clean", h.clear)
	g.Match([]string{http.MethodGet, http.MethodPost}, "/order/clean/", h.clear)
}

func (h *CartHandler) addRemoveDish(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request method"})
	}

	var req addRemoveDishRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ctx := c.Request().Context()
	owner := middleware.Owner(c)

	dishID, err := strconv.ParseInt(strings.TrimSpace(req.DishID), 10, 64)
	if err != nil {
		return writeError(c, h.log, usecase.ErrDishNotFound)
	}
	if _, err := h.catalog.Dish(ctx, dishID); err != nil {
		return writeError(c, h.log, err)
	}

	switch req.Action {
	case actionAddOne:
		res, err := h.cart.AddOne(ctx, owner, dishID)
		if err != nil {
			return writeError(c, h.log, err)
		}
		qty := res.LineItem.Quantity
		orderID := res.Order.ID
		if res.CreatedOrder {
			return c.JSON(http.StatusCreated, CartActionResponse{
				Message:  "Dish added to a new order successfully",
				Outcome:  "order_created",
				OrderID:  &orderID,
				Quantity: &qty,
			})
		}
		return c.JSON(http.StatusOK, CartActionResponse{
			Message:  "Dish added to an existing order successfully",
			Outcome:  "incremented",
			OrderID:  &orderID,
			Quantity: &qty,
		})

	case actionRemoveOne:
		outcome, err := h.cart.RemoveOne(ctx, owner, dishID)
		if err != nil {
			return writeError(c, h.log, err)
		}
		msg := "Dish completely removed from an existing order successfully"
		if outcome == usecase.Decremented {
			msg = "One dish removed from an existing order successfully"
		}
		return c.JSON(http.StatusOK, CartActionResponse{
			Message: msg,
			Outcome: outcome.String(),
		})

	default:
		return writeError(c, h.log, usecase.ErrInvalidAction)
	}
}

func (h *CartHandler) clear(c echo.Context) error {
	if err := h.cart.Clear(c.Request().Context(), middleware.Owner(c)); err != nil {
		return writeError(c, h.log, err)
	}
	return c.Redirect(http.StatusFound, "/")
}
