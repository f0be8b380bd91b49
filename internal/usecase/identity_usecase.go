package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pizzeria/internal/domain/model"
	repo "pizzeria/internal/repository"
)

// IdentityResult is what the HTTP layer needs after resolving a request.
type IdentityResult struct {
	Owner model.Owner
	// SessionKey is the key to keep in the session cookie.
	SessionKey string
	// SessionCreated tells the caller to set the cookie.
	SessionCreated bool
}

// IdentityUsecase maps a request's auth and session state onto a cart owner.
type IdentityUsecase struct {
	sessions repo.SessionRepository
	idGen    IDGenerator
	clock    Clock
	ttl      time.Duration
}

// DI
func NewIdentityUsecase(sessions repo.SessionRepository, idGen IDGenerator, clock Clock, ttl time.Duration) *IdentityUsecase {
	return &IdentityUsecase{
		sessions: sessions,
		idGen:    idGen,
		clock:    clock,
		ttl:      ttl,
	}
}

const sessionKeyLen = 32

// Resolve never fails for domain reasons; only storage errors surface.
// Every visitor ends up with a valid session, logged in or not, but a
// logged-in customer owns the cart by id.
func (u *IdentityUsecase) Resolve(ctx context.Context, customerID *int64, sessionKey string) (IdentityResult, error) {
	now := u.clock.Now()

	valid, err := u.validSession(ctx, sessionKey, now)
	if err != nil {
		return IdentityResult{}, err
	}

	res := IdentityResult{SessionKey: sessionKey}
	if !valid {
		key, err := u.createSession(ctx, now)
		if err != nil {
			return IdentityResult{}, err
		}
		res.SessionKey = key
		res.SessionCreated = true
	}

	if customerID != nil && *customerID > 0 {
		res.Owner = model.CustomerOwner(*customerID)
	} else {
		res.Owner = model.SessionOwner(res.SessionKey)
	}
	return res, nil
}

func (u *IdentityUsecase) validSession(ctx context.Context, key string, now time.Time) (bool, error) {
	if key == "" || len(key) > sessionKeyLen {
		return false, nil
	}
	_, err := u.sessions.FindValid(ctx, key, now)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find session: %w", err)
	}
	return true, nil
}

func (u *IdentityUsecase) createSession(ctx context.Context, now time.Time) (string, error) {
	// a collision on a random 128-bit key is not expected; retry a couple of times anyway
	for attempt := 0; attempt < 3; attempt++ {
		key := newSessionKey(u.idGen.NewID())
		err := u.sessions.Create(ctx, model.Session{
			Key:       key,
			ExpiresAt: now.Add(u.ttl),
			CreatedAt: now,
		})
		if err == nil {
			return key, nil
		}
		if !errors.Is(err, repo.ErrDuplicate) {
			return "", fmt.Errorf("create session: %w", err)
		}
	}
	return "", errors.New("create session: key collision")
}

// PurgeExpiredSessions drops sessions past their expiry.
func (u *IdentityUsecase) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return u.sessions.DeleteExpired(ctx, u.clock.Now())
}

// uuid without dashes is exactly 32 chars.
func newSessionKey(id string) string {
	key := strings.ReplaceAll(id, "-", "")
	if len(key) > sessionKeyLen {
		key = key[:sessionKeyLen]
	}
	return key
}
