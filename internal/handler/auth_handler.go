package handler

import (
	"errors"
	"net/http"

	auth "pizzeria/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase
	loginUC    *auth.LoginUsecase
	log        *zap.Logger
}

// DI
func NewAuthHandler(registerUC *auth.RegisterUserUsecase, loginUC *auth.LoginUsecase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		log:        log,
	}
}

type registerRequest struct {
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password1"`
	PasswordConfirm string `json:"password_confirm" form:"password2"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/accounts")
	g.POST("/register", h.register)
	g.POST("/login", h.login)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR"})
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidUsername),
			errors.Is(err, auth.ErrInvalidEmailFormat),
			errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, auth.ErrWeakPassword),
			errors.Is(err, auth.ErrPasswordMismatch):
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, auth.ErrUsernameTaken):
			return c.JSON(http.StatusConflict, ErrorResponse{Error: "CONFLICT"})
		default:
			return writeError(c, h.log, err)
		}
	}

	return c.JSON(http.StatusCreated, out.Customer)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR"})
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED"})
		case errors.Is(err, auth.ErrUserInactive):
			return c.JSON(http.StatusForbidden, ErrorResponse{Error: "FORBIDDEN"})
		default:
			return writeError(c, h.log, err)
		}
	}

	return c.JSON(http.StatusOK, out)
}
