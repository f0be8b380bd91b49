package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"pizzeria/internal/domain/model"
	"pizzeria/internal/repository"
)

type LoginInput struct {
	Username string
	Password string
}

type JwtAccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type LoginOutput struct {
	Customer model.Customer `json:"customer"`
	Token    JwtAccessToken `json:"token"`
}

// unknown username or wrong password
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrUserInactive = errors.New("user is inactive")

// AccessTokenIssuer signs the bearer token checked by middleware.AuthJWT.
type AccessTokenIssuer interface {
	Issue(customerID int64, now time.Time) (token string, expiresAt time.Time, err error)
}

type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type LoginUsecase struct {
	customers repository.CustomerRepository
	verifier  PasswordVerifier
	issuer    AccessTokenIssuer
	clock     Clock
}

func NewLoginUsecase(
	customers repository.CustomerRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		customers: customers,
		verifier:  verifier,
		issuer:    issuer,
		clock:     clock,
	}
}

func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return out, ErrInvalidCredentials
	}

	c, err := u.customers.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	if !c.IsActive {
		return out, ErrUserInactive
	}

	if ok := u.verifier.Verify(in.Password, c.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	now := u.clock.Now()
	accessToken, accessExp, err := u.issuer.Issue(c.ID, now)
	if err != nil {
		return out, err
	}

	c.LastLoginAt = &now
	if err := u.customers.Update(ctx, c); err != nil {
		return out, err
	}

	safe := *c
	safe.PasswordHash = ""

	out.Customer = safe
	out.Token = JwtAccessToken{
		AccessToken: accessToken,
		ExpiresIn:   int(accessExp.Sub(now).Seconds()),
	}
	return out, nil
}
