package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"pizzeria/internal/domain/model"
	"pizzeria/internal/repository"
	"pizzeria/internal/validator"

	"golang.org/x/crypto/bcrypt"
)

// registration form
type RegisterUserInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

type RegisterUserOutput struct {
	Customer model.Customer
}

var (
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrWeakPassword       = errors.New("weak password")
	ErrPasswordMismatch   = errors.New("passwords do not match")

	ErrUsernameTaken = errors.New("username already exists")
)

// letters, digits and @/./+/-/_
var usernameRe = regexp.MustCompile(`^[\w.@+-]{1,150}$`)

const minPasswordLen = 8

type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type Clock interface {
	Now() time.Time
}

type RegisterUserUsecase struct {
	customers repository.CustomerRepository
	hasher    PasswordHasher
	clock     Clock
}

// DI
func NewRegisterUserUsecase(
	customers repository.CustomerRepository,
	hasher PasswordHasher,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		customers: customers,
		hasher:    hasher,
		clock:     clock,
	}
}

func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	username := strings.TrimSpace(in.Username)
	if !usernameRe.MatchString(username) {
		return out, ErrInvalidUsername
	}

	// same rule as checkout and profile, but required here
	email, err := validator.CleanEmail(in.Email)
	if err != nil || email == "" {
		return out, ErrInvalidEmailFormat
	}

	if len(in.Password) < minPasswordLen {
		return out, ErrPasswordTooShort
	}
	if isWeakPassword(in.Password) {
		return out, ErrWeakPassword
	}
	if in.Password != in.PasswordConfirm {
		return out, ErrPasswordMismatch
	}

	existing, err := u.customers.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return out, ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return out, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()
	c := &model.Customer{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// a concurrent registration can still win the unique index
	if err := u.customers.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return out, ErrUsernameTaken
		}
		return out, err
	}

	out.Customer = *c
	out.Customer.PasswordHash = ""
	return out, nil
}

func isWeakPassword(password string) bool {
	normalized := strings.ToLower(strings.TrimSpace(password))

	weak := map[string]struct{}{
		"password":    {},
		"password123": {},
		"12345678":    {},
		"123456789":   {},
		"1234567890":  {},
		"qwerty123":   {},
		"qwertyuiop":  {},
		"iloveyou":    {},
		"pizzapizza":  {},
	}

	_, ok := weak[normalized]
	return ok
}

type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
