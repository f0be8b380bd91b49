package handler

import (
	"net/http"
	"strconv"

	"pizzeria/internal/config"
	"pizzeria/internal/middleware"
	"pizzeria/internal/usecase"
	"pizzeria/internal/validator"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	uc  *usecase.ProfileUsecase
	log *zap.Logger
}

// DI
func NewProfileHandler(uc *usecase.ProfileUsecase, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{uc: uc, log: log}
}

type profileRequest struct {
	FirstName   string `json:"first_name" form:"first_name"`
	LastName    string `json:"last_name" form:"last_name"`
	PhoneNumber string `json:"phone_number" form:"phone_number"`
	Email       string `json:"email" form:"email"`
	Address     string `json:"address" form:"address"`
}

type ProfileFormResponse struct {
	Profile usecase.ProfileOutput `json:"profile"`
	Errors  map[string][]string   `json:"errors,omitempty"`
}

func (h *ProfileHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/profile")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("/:id", h.get)
	g.GET("/:id/activity", h.activity)
	g.PUT("/:id", h.update)
	g.POST("/:id", h.update)
}

func (h *ProfileHandler) get(c echo.Context) error {
	viewerID, ok := middleware.CustomerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	profileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	out, err := h.uc.Get(c.Request().Context(), viewerID, profileID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, ProfileFormResponse{Profile: out})
}

func (h *ProfileHandler) activity(c echo.Context) error {
	viewerID, ok := middleware.CustomerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	profileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	q := usecase.ActivityQuery{Page: 1}
	if v := c.QueryParam("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			q.Page = p
		}
	}
	if v := c.QueryParam("order"); v != "" {
		orderID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid order"})
		}
		q.OrderID = &orderID
	}

	out, err := h.uc.Activity(c.Request().Context(), viewerID, profileID, q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": out})
}

func (h *ProfileHandler) update(c echo.Context) error {
	viewerID, ok := middleware.CustomerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	profileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ctx := c.Request().Context()
	out, err := h.uc.Update(ctx, viewerID, profileID, usecase.ProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Address:     req.Address,
	})
	if err == nil {
		return c.JSON(http.StatusOK, ProfileFormResponse{Profile: out})
	}

	ve, ok := validator.AsValidationErrors(err)
	if !ok {
		return writeError(c, h.log, err)
	}

	// same page, current values plus errors
	current, err := h.uc.Get(ctx, viewerID, profileID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, ProfileFormResponse{Profile: current, Errors: ve.Fields()})
}
