package validator

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nyaruka/phonenumbers"
)

const (
	addressMinLen     = 10
	addressMaxLen     = 255
	addressMinLetters = 8
	emailMaxLen       = 64
)

var (
	ErrNameRequired   = errors.New("Name is required")
	ErrNameLowercase  = errors.New("Name must start with uppercase letter")
	ErrNameTooShort   = errors.New("Name must be at least 2 characters long")
	ErrNameNotLetters = errors.New("Name must contain only letters")

	ErrPhoneRequired = errors.New("Phone number is required")
	ErrPhoneInvalid  = errors.New("Enter a valid phone number (e.g. +12125552368).")

	ErrEmailInvalid = errors.New("Enter a valid email address.")
	ErrEmailTooLong = fmt.Errorf("Ensure this value has at most %d characters", emailMaxLen)

	ErrAddressRequired   = errors.New("Address is required")
	ErrAddressTooShort   = fmt.Errorf("Address must be at least %d characters long", addressMinLen)
	ErrAddressTooLong    = fmt.Errorf("Address must be at most %d characters long", addressMaxLen)
	ErrAddressFewLetters = fmt.Errorf("Address must contain at least %d letters", addressMinLetters)
	ErrAddressNoDigit    = errors.New("Address must contain at least 1 digit")
)

// CleanName trims and checks a person name: uppercase first letter, at
// least two characters, letters separated by single spaces.
func CleanName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrNameRequired
	}
	first, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsUpper(first) {
		return "", ErrNameLowercase
	}
	if utf8.RuneCountInString(name) < 2 {
		return "", ErrNameTooShort
	}

	prevSpace := false
	for _, r := range name {
		switch {
		case r == ' ':
			if prevSpace {
				return "", ErrNameNotLetters
			}
			prevSpace = true
		case unicode.IsLetter(r):
			prevSpace = false
		default:
			return "", ErrNameNotLetters
		}
	}
	return name, nil
}

// CleanPhone accepts international numbers only and returns E.164.
func CleanPhone(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrPhoneRequired
	}
	if !strings.HasPrefix(s, "+") {
		return "", ErrPhoneInvalid
	}
	num, err := phonenumbers.Parse(s, "")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", ErrPhoneInvalid
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// CleanEmail returns "" for an empty optional email. Only a bare address
// is accepted, not "Name <addr>".
func CleanEmail(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", nil
	}
	if utf8.RuneCountInString(s) > emailMaxLen {
		return "", ErrEmailTooLong
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", ErrEmailInvalid
	}
	return s, nil
}

// CleanAddress checks length, letter count and presence of a digit
// (a house number).
func CleanAddress(raw string) (string, error) {
	addr := strings.TrimSpace(raw)
	if addr == "" {
		return "", ErrAddressRequired
	}
	n := utf8.RuneCountInString(addr)
	if n < addressMinLen {
		return "", ErrAddressTooShort
	}
	if n > addressMaxLen {
		return "", ErrAddressTooLong
	}

	letters, digits := 0, 0
	for _, r := range addr {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		}
	}
	if letters < addressMinLetters {
		return "", ErrAddressFewLetters
	}
	if digits < 1 {
		return "", ErrAddressNoDigit
	}
	return addr, nil
}
