package middleware

import (
	"context"
	"net/http"
	"time"

	"pizzeria/internal/domain/model"
	"pizzeria/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	CtxOwnerKey = "cart_owner" // model.Owner

	SessionCookieName = "sessionid"
)

type IdentityResolver interface {
	Resolve(ctx context.Context, customerID *int64, sessionKey string) (usecase.IdentityResult, error)
}

type SessionCookieOptions struct {
	Secure bool
	TTL    time.Duration
}

// Identity resolves the cart owner for every request and keeps the
// session cookie in sync. Must run after OptionalAuthJWT.
func Identity(resolver IdentityResolver, opts SessionCookieOptions, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var customerID *int64
			if id, ok := CustomerID(c); ok {
				customerID = &id
			}

			var sessionKey string
			if ck, err := c.Cookie(SessionCookieName); err == nil {
				sessionKey = ck.Value
			}

			res, err := resolver.Resolve(c.Request().Context(), customerID, sessionKey)
			if err != nil {
				log.Error("resolve identity", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}

			if res.SessionCreated {
				c.SetCookie(&http.Cookie{
					Name:     SessionCookieName,
					Value:    res.SessionKey,
					Path:     "/",
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   int(opts.TTL.Seconds()),
				})
			}

			c.Set(CtxOwnerKey, res.Owner)
			return next(c)
		}
	}
}

// Owner reads what Identity stored.
func Owner(c echo.Context) model.Owner {
	o, _ := c.Get(CtxOwnerKey).(model.Owner)
	return o
}
