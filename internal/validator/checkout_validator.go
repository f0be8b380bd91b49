package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	repo "pizzeria/internal/repository"
	"pizzeria/internal/usecase"
)

var (
	ErrDeliveryTimeRequired = errors.New("Delivery time is required")
	ErrDeliveryTimeInvalid  = errors.New("Enter a valid date/time.")
)

// zone-less layouts are read in the delivery location
var localLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

type checkoutValidator struct {
	loc  *time.Location
	lead time.Duration
}

// NewCheckoutValidator checks delivery forms against the given timezone
// and minimum lead time.
func NewCheckoutValidator(loc *time.Location, lead time.Duration) usecase.CheckoutValidator {
	return &checkoutValidator{loc: loc, lead: lead}
}

// ValidateCheckout runs every field rule and reports all failures at once.
func (v *checkoutValidator) ValidateCheckout(in usecase.CheckoutInput, now time.Time) (repo.DeliveryDetails, error) {
	var errs ValidationErrors
	var out repo.DeliveryDetails
	var err error

	out.Name, err = CleanName(in.Name)
	errs.add("name", err)

	out.PhoneNumber, err = CleanPhone(in.PhoneNumber)
	errs.add("phone_number", err)

	email, err := CleanEmail(in.Email)
	errs.add("email", err)
	if err == nil && email != "" {
		out.Email = &email
	}

	out.Address, err = CleanAddress(in.Address)
	errs.add("address", err)

	out.RequestedDeliveryAt, err = v.cleanDeliveryTime(in.RequestedDeliveryAt, now)
	errs.add("requested_delivery_at", err)

	if err := errs.orNil(); err != nil {
		return repo.DeliveryDetails{}, err
	}
	return out, nil
}

func (v *checkoutValidator) cleanDeliveryTime(raw string, now time.Time) (time.Time, error) {
	t, err := ParseDeliveryTime(raw, v.loc)
	if err != nil {
		return time.Time{}, err
	}
	if t.Before(now.Add(v.lead)) {
		return time.Time{}, fmt.Errorf("Time should be at least %d minutes from now", int(v.lead.Minutes()))
	}
	return t, nil
}

// ParseDeliveryTime accepts RFC 3339 or a zone-less datetime-local value,
// which is read in loc.
func ParseDeliveryTime(raw string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, ErrDeliveryTimeRequired
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrDeliveryTimeInvalid
}
