package service

import (
	"strings"
	"unicode"

	"github.com/esociety/society-api/internal/core/domain"
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "12345678": {}, "123456789": {},
	"1234567890": {}, "qwerty123": {}, "qwertyuiop": {}, "iloveyou": {}, "admin123": {},
	"welcome1": {}, "letmein1": {}, "football": {}, "baseball": {}, "sunshine": {},
	"princess": {}, "abc12345": {}, "11111111": {}, "00000000": {}, "passw0rd": {},
}

// checkPassword adds the password policy failures for a signup to verr.
func checkPassword(verr *domain.ValidationError, password, confirmation, email string) {
	if password == "" {
		verr.Add("password", "this field is required")
		return
	}
	if confirmation == "" {
		verr.Add("password_confirmation", "this field is required")
	} else if password != confirmation {
		verr.Add("password_confirmation", "the two password fields didn't match")
	}

	if len([]rune(password)) < minPasswordLength {
		verr.Add("password", "this password is too short, it must contain at least 8 characters")
	}
	if len(password) > maxPasswordBytes {
		verr.Add("password", "this password is too long, it must be at most 72 bytes")
	}
	if isNumeric(password) {
		verr.Add("password", "this password is entirely numeric")
	}
	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		verr.Add("password", "this password is too common")
	}
	local := domain.EmailLocalPart(email)
	if len(local) >= 3 && strings.Contains(strings.ToLower(password), strings.ToLower(local)) {
		verr.Add("password", "the password is too similar to the email")
	}
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
