package validation

import (
	"unicode"

	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
)

const MinPasswordLength = 8

// ValidatePassword: не короче 8 символов, есть заглавная, строчная буква и цифра.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return apperror.Validation("пароль должен быть не менее 8 символов")
	}

	var hasUpper, hasLower, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if !hasUpper {
		return apperror.Validation("пароль должен содержать хотя бы одну заглавную букву")
	}
	if !hasLower {
		return apperror.Validation("пароль должен содержать хотя бы одну строчную букву")
	}
	if !hasNumber {
		return apperror.Validation("пароль должен содержать хотя бы одну цифру")
	}
	return nil
}
