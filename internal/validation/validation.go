// Package validation checks form input before it is sent to the backend.
// The backend validates again; these checks exist to give fast feedback.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern  = regexp.MustCompile(`^[0-9+\s()\-]{7,20}$`)
	letterPattern = regexp.MustCompile(`[a-zA-Z]`)
)

type Result struct {
	Valid   bool
	Message string
}

var ok = Result{Valid: true}

func fail(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}

func Required(value, fieldName string) Result {
	if strings.TrimSpace(value) == "" {
		return fail("%s is required.", fieldName)
	}
	return ok
}

func MinLength(value string, n int, fieldName string) Result {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < n {
		return fail("%s must be at least %d characters.", fieldName, n)
	}
	return ok
}

func MaxLength(value string, n int, fieldName string) Result {
	if utf8.RuneCountInString(strings.TrimSpace(value)) > n {
		return fail("%s must be at most %d characters.", fieldName, n)
	}
	return ok
}

func Email(value string) Result {
	if !emailPattern.MatchString(strings.TrimSpace(value)) {
		return fail("Please enter a valid email address.")
	}
	return ok
}

// Phone accepts an empty value; the field is optional everywhere.
func Phone(value string) Result {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ok
	}
	if letterPattern.MatchString(trimmed) {
		return fail("Phone number cannot contain letters.")
	}
	if !phonePattern.MatchString(trimmed) {
		return fail("Phone must contain only numbers and valid characters (+, -, spaces, parentheses).")
	}
	return ok
}

func PositiveNumber(value, fieldName string) Result {
	n, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil || !n.IsPositive() {
		return fail("%s must be a positive number.", fieldName)
	}
	return ok
}

// ZeroOrMore accepts any number that is not negative.
func ZeroOrMore(value, fieldName string) Result {
	n, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil || n.IsNegative() {
		return fail("%s must be zero or more.", fieldName)
	}
	return ok
}

// Different fails when a equals b. An empty message uses the default text.
func Different(a, b, message string) Result {
	if message == "" {
		message = "Values must be different."
	}
	if a == b {
		return Result{Message: message}
	}
	return ok
}

func Selection(value, fieldName string) Result {
	if strings.TrimSpace(value) == "" {
		return fail("Please select a %s.", fieldName)
	}
	return ok
}

func Username(value string) Result {
	if r := Required(value, "Username"); !r.Valid {
		return r
	}
	return MinLength(value, 3, "Username")
}

func Password(value string) Result {
	if r := Required(value, "Password"); !r.Valid {
		return r
	}
	return MinLength(value, 6, "Password")
}
