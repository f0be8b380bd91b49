package server

import (
	"pizzeria/internal/config"
	"pizzeria/internal/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, log *zap.Logger, identity middleware.IdentityResolver, h Handlers) {
	// cart-scoped pages: optional login, then owner resolution
	store := e.Group("",
		middleware.OptionalAuthJWT(cfg),
		middleware.Identity(identity, middleware.SessionCookieOptions{
			Secure: cfg.CookieSecure,
			TTL:    cfg.SessionTTL,
		}, log),
	)
	h.Catalog.RegisterRoutes(store)
	h.Cart.RegisterRoutes(store)
	h.Checkout.RegisterRoutes(store)

	h.Auth.RegisterRoutes(e)
	h.Profile.RegisterRoutes(e, cfg)
}
