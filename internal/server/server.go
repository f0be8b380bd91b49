package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"pizzeria/internal/config"
	"pizzeria/internal/handler"
	"pizzeria/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Handlers is everything the router needs.
type Handlers struct {
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Auth     *handler.AuthHandler
	Profile  *handler.ProfileHandler
}

// New builds the echo instance with global middleware and routes.
func New(cfg config.Config, log *zap.Logger, identity middleware.IdentityResolver, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))

	RegisterRoutes(e, cfg, log, identity, h)
	return e
}

// Start serves until ctx is done, then shuts down gracefully.
func Start(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
