package user

import (
	"fmt"
	"regexp"
)

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	mobileRegex = regexp.MustCompile(`^\d{10}$`)
	upperRegex  = regexp.MustCompile(`[A-Z]`)
	symbolRegex = regexp.MustCompile(`[\W_]`)
)

// VerifyPasswordComplexity checks that the password meets complexity requirements.
func VerifyPasswordComplexity(pw string) error {
	if len(pw) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}
	if !upperRegex.MatchString(pw) {
		return fmt.Errorf("password must include at least one uppercase letter")
	}
	if !symbolRegex.MatchString(pw) {
		return fmt.Errorf("password must include at least one special character")
	}
	return nil
}
