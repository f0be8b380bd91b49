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

type ErrorResponse struct {
	Error string `json:"error"`
}

type FieldErrorsResponse struct {
	Errors map[string][]string `json:"errors"`
}

// writeError renders user-correctable errors as-is and hides everything
// else behind a logged 500.
func writeError(c echo.Context, log *zap.Logger, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}
	if ve, ok := validator.AsValidationErrors(err); ok {
		return c.JSON(http.StatusBadRequest, FieldErrorsResponse{Errors: ve.Fields()})
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.String("method", c.Request().Method),
		zap.String("path", c.Request().URL.Path),
		zap.Stringer("owner", middleware.Owner(c)),
	}
	if errors.Is(err, usecase.ErrMultipleOpenOrders) {
		log.Error("cart invariant violated", fields...)
	} else {
		log.Error("request failed", fields...)
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
