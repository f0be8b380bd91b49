package handler

import (
	"errors"
	"net/http"

	"pizzeria/internal/middleware"
	"pizzeria/internal/usecase"
	"pizzeria/internal/validator"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	uc   *usecase.CheckoutUsecase
	cart *usecase.CartUsecase
	log  *zap.Logger
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase, cart *usecase.CartUsecase, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, cart: cart, log: log}
}

type checkoutRequest struct {
	Name                string `json:"name" form:"name"`
	PhoneNumber         string `json:"phone_number" form:"phone_number"`
	Email               string `json:"email" form:"email"`
	Address             string `json:"address" form:"address"`
	RequestedDeliveryAt string `json:"requested_delivery_at" form:"requested_delivery_at"`
}

// CheckoutFormResponse re-renders the submitted values next to their errors.
type CheckoutFormResponse struct {
	Form   usecase.CheckoutForm `json:"form"`
	Errors map[string][]string  `json:"errors,omitempty"`
}

func (h *CheckoutHandler) RegisterRoutes(g *echo.Group) {
	for _, p := range []string{"/order_complete", "/order_complete/"} {
		g.GET(p, h.form)
		g.POST(p, h.submit)
	}
}

func (h *CheckoutHandler) form(c echo.Context) error {
	form, err := h.uc.Form(c.Request().Context(), middleware.Owner(c))
	if errors.Is(err, usecase.ErrNoOpenOrder) {
		return c.Redirect(http.StatusFound, "/")
	}
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, CheckoutFormResponse{Form: form})
}

func (h *CheckoutHandler) submit(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ctx := c.Request().Context()
	owner := middleware.Owner(c)

	_, err := h.uc.Submit(ctx, owner, usecase.CheckoutInput{
		Name:                req.Name,
		PhoneNumber:         req.PhoneNumber,
		Email:               req.Email,
		Address:             req.Address,
		RequestedDeliveryAt: req.RequestedDeliveryAt,
	})
	if err == nil {
		return c.Redirect(http.StatusFound, "/")
	}

	ve, ok := validator.AsValidationErrors(err)
	if !ok {
		return writeError(c, h.log, err)
	}

	summary, err := h.cart.Summary(ctx, owner)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, CheckoutFormResponse{
		Form: usecase.CheckoutForm{
			Name:                req.Name,
			PhoneNumber:         req.PhoneNumber,
			Email:               req.Email,
			Address:             req.Address,
			RequestedDeliveryAt: req.RequestedDeliveryAt,
			Cart:                summary,
		},
		Errors: ve.Fields(),
	})
}
