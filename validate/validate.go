// Package validate holds the named form validation rules shared by the
// login, register, profile and password-reset forms. Each rule returns
// nil on pass or an error whose text is the user-facing message, so the
// same rule produces the same message on every form.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Required fails when value is empty or whitespace-only.
func Required(label, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", label)
	}
	return nil
}

// Email fails when value is not a plausible email address.
func Email(value string) error {
	if !emailPattern.MatchString(strings.TrimSpace(value)) {
		return errors.New("enter a valid email address")
	}
	return nil
}

// MinLen fails when value is shorter than n characters.
func MinLen(label, value string, n int) error {
	if len(value) < n {
		return fmt.Errorf("%s must be at least %d characters", label, n)
	}
	return nil
}

// PasswordLength is the minimum account password length the forms enforce.
const PasswordLength = 6

// Password applies the site's password length rule.
func Password(value string) error {
	return MinLen("password", value, PasswordLength)
}

// Match fails when the two values differ (password confirmation).
func Match(a, b string) error {
	if a != b {
		return errors.New("passwords do not match")
	}
	return nil
}

// First returns the first failing rule's error, or nil when all pass.
func First(rules ...error) error {
	for _, err := range rules {
		if err != nil {
			return err
		}
	}
	return nil
}
