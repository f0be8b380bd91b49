package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pizzeria/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxCustomerIDKey = "customer_id" // int64
)

var errNoToken = errors.New("no bearer token")

// AuthJWT rejects requests without a valid bearer token.
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			customerID, err := customerFromBearer(c.Request(), cfg.JWTSecret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			c.Set(CtxCustomerIDKey, customerID)
			return next(c)
		}
	}
}

// OptionalAuthJWT lets anonymous requests through but still rejects a
// token that is present and invalid.
func OptionalAuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			customerID, err := customerFromBearer(c.Request(), cfg.JWTSecret)
			if errors.Is(err, errNoToken) {
				return next(c)
			}
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			c.Set(CtxCustomerIDKey, customerID)
			return next(c)
		}
	}
}

// CustomerID reads what AuthJWT stored.
func CustomerID(c echo.Context) (int64, bool) {
	id, ok := c.Get(CtxCustomerIDKey).(int64)
	return id, ok && id > 0
}

func customerFromBearer(r *http.Request, secret string) (int64, error) {
	authz := r.Header.Get("Authorization")
	if authz == "" {
		return 0, errNoToken
	}

	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return 0, errors.New("malformed authorization header")
	}
	rawToken := strings.TrimSpace(parts[1])
	if rawToken == "" {
		return 0, errors.New("empty bearer token")
	}

	// exp is checked by Parse
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}

	customerID, err := parseSubject(claims["sub"])
	if err != nil || customerID <= 0 {
		return 0, errors.New("invalid sub")
	}
	return customerID, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

func parseSubject(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid sub")
	}
}
