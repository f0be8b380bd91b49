package handler

import (
	"net/http"
	"strconv"

	"pizzeria/internal/middleware"
	"pizzeria/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// public catalog pages
type CatalogHandler struct {
	uc  *usecase.CatalogUsecase
	log *zap.Logger
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, log: log}
}

func (h *CatalogHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/", h.index)
	g.GET("/dishes/:id", h.detail)
	g.GET("/dishes/:id/", h.detail)
}

func (h *CatalogHandler) index(c echo.Context) error {
	// garbage page falls back to the first page
	page := 1
	if v := c.QueryParam("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			page = p
		}
	}

	out, err := h.uc.Index(c.Request().Context(), middleware.Owner(c), usecase.CatalogQuery{
		Page: page,
		Name: c.QueryParam("name"),
		Sort: c.QueryParam("sort"),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	out, err := h.uc.Detail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, out)
}
