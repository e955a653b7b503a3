// Package api определяет входящие порты сервиса.
package api

import (
	"context"

	"geoprofiles/internal/api/domain/entities"
)

// AuthUseCase определяет основной порт для регистрации и аутентификации.
type AuthUseCase interface {
	Register(ctx context.Context, reg entities.Registration) (*entities.User, error)

	SignIn(ctx context.Context, login, password string) (string, error)

	// Authenticate проверяет токен и возвращает его владельца.
	Authenticate(ctx context.Context, token string) (*entities.User, error)
}
