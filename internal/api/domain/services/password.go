// Package services содержит доменные правила, не зависящие от инфраструктуры.
package services

import (
	"strings"
	"unicode/utf8"

	"geoprofiles/internal/api/domain/entities"
)

// MinPasswordLength - минимальная длина пароля в символах.
const MinPasswordLength = 6

const (
	latinLower = "abcdefghijklmnopqrstuvwxyz"
	digits     = "0123456789"
)

// ValidatePassword проверяет состав пароля. Правила проверяются по порядку, возвращается первая ошибка.
func ValidatePassword(password string) error {
	switch {
	case utf8.RuneCountInString(password) < MinPasswordLength:
		return entities.ErrPasswordLength
	case !strings.ContainsAny(password, latinLower):
		return entities.ErrPasswordNoLatin
	case !strings.ContainsAny(password, digits):
		return entities.ErrPasswordNoNumbers
	}
	return nil
}
