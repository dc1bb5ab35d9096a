package auth

import (
	"errors"
	"strings"
)

// NormalizeEmail trims and lowercases an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegister trims the request in place and rejects blank names.
func ValidateRegister(req *RegisterRequest) error {
	req.Email = NormalizeEmail(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if req.FirstName == "" {
		return errors.New("First Name is required")
	}
	if req.LastName == "" {
		return errors.New("Last Name is required")
	}
	if len(req.FirstName) > 50 || len(req.LastName) > 50 {
		return errors.New("names cannot exceed 50 characters")
	}

	return nil
}
