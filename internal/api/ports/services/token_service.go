package services

import (
	"context"

	"geoprofiles/internal/api/domain/services"
)

// TokenService выпускает и разбирает подписанные токены сессии.
type TokenService interface {
	Issue(ctx context.Context, userID int64) (string, error)

	// Parse проверяет подпись и наличие обязательных полей. Срок жизни здесь не проверяется.
	Parse(ctx context.Context, token string) (*services.TokenClaims, error)
}
