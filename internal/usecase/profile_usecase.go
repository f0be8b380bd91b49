package usecase

import (
	"context"
	"errors"
	"time"

	"pizzeria/internal/domain/model"
	repo "pizzeria/internal/repository"
)

type ProfileInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
	Address     string
}

// Cleaned profile values; PhoneNumber is E.164.
type ProfileFields struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
	Address     string
}

type ProfileValidator interface {
	ValidateProfile(in ProfileInput) (ProfileFields, error)
}

type ProfileOutput struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	PhoneNumber *string    `json:"phone_number"`
	Address     *string    `json:"address"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// ActivityOutput is one audited order change made by the customer.
type ActivityOutput struct {
	Action    model.AuditAction `json:"action"`
	OrderID   int64             `json:"order_id"`
	CreatedAt time.Time         `json:"created_at"`
}

// activityPageSize bounds one page of the activity feed.
const activityPageSize = 20

type ProfileUsecase struct {
	customers repo.CustomerRepository
	audit     repo.AuditLogRepository
	validator ProfileValidator
}

// DI
func NewProfileUsecase(customers repo.CustomerRepository, audit repo.AuditLogRepository, validator ProfileValidator) *ProfileUsecase {
	return &ProfileUsecase{customers: customers, audit: audit, validator: validator}
}

// Get returns the viewer's own profile; anyone else's is 403.
func (u *ProfileUsecase) Get(ctx context.Context, viewerID int64, profileID int64) (ProfileOutput, error) {
	c, err := u.load(ctx, viewerID, profileID)
	if err != nil {
		return ProfileOutput{}, err
	}
	return toProfileOutput(c), nil
}

func (u *ProfileUsecase) Update(ctx context.Context, viewerID int64, profileID int64, in ProfileInput) (ProfileOutput, error) {
	c, err := u.load(ctx, viewerID, profileID)
	if err != nil {
		return ProfileOutput{}, err
	}

	f, err := u.validator.ValidateProfile(in)
	if err != nil {
		return ProfileOutput{}, err
	}

	c.FirstName = f.FirstName
	c.LastName = f.LastName
	c.Email = f.Email
	c.PhoneNumber = &f.PhoneNumber
	c.Address = &f.Address

	if err := u.customers.Update(ctx, c); err != nil {
		return ProfileOutput{}, err
	}
	return toProfileOutput(c), nil
}

// ActivityQuery pages the feed; OrderID narrows it to one order's history.
type ActivityQuery struct {
	Page    int
	OrderID *int64
}

// Activity lists the customer's checkouts and cleared carts, newest first.
func (u *ProfileUsecase) Activity(ctx context.Context, viewerID int64, profileID int64, q ActivityQuery) ([]ActivityOutput, error) {
	c, err := u.load(ctx, viewerID, profileID)
	if err != nil {
		return nil, err
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	logs, err := u.audit.List(ctx, repo.AuditLogFilter{
		Actor:   model.CustomerOwner(c.ID).String(),
		Actions: []model.AuditAction{model.AuditActionApproveOrder, model.AuditActionClearOrder},
		OrderID: q.OrderID,
		Limit:   activityPageSize,
		Offset:  (page - 1) * activityPageSize,
	})
	if err != nil {
		return nil, err
	}

	out := make([]ActivityOutput, 0, len(logs))
	for _, l := range logs {
		out = append(out, ActivityOutput{
			Action:    l.Action,
			OrderID:   l.ResourceID,
			CreatedAt: l.CreatedAt,
		})
	}
	return out, nil
}

func (u *ProfileUsecase) load(ctx context.Context, viewerID int64, profileID int64) (*model.Customer, error) {
	if viewerID <= 0 {
		return nil, ErrUnauthorized
	}
	if profileID != viewerID {
		return nil, ErrForbidden
	}

	c, err := u.customers.FindByID(ctx, profileID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, ErrForbidden
	}
	return c, nil
}

func toProfileOutput(c *model.Customer) ProfileOutput {
	return ProfileOutput{
		ID:          c.ID,
		Username:    c.Username,
		Email:       c.Email,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
		LastLoginAt: c.LastLoginAt,
	}
}
