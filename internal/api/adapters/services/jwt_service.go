package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"geoprofiles/internal/api/domain/entities"
	"geoprofiles/internal/api/domain/services"
	"geoprofiles/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodIssue        = "Issue"
	methodParse        = "Parse"
	msgIssuingToken    = "issuing token"
	msgValidatingToken = "validating token"
	msgTokenIssued     = "token issued successfully"
	msgTokenParsed     = "token parsed successfully"
	msgInvalidToken    = "invalid token"
	msgMissingClaims   = "token lacks required claims"
	//nolint:gosec
	errSigningToken       = "error signing token"
	errCtxIssuingToken    = "issuing token"
	errCtxParsingToken    = "parsing token"
	errCtxValidatingToken = "validating token claims"
)

// Ошибки сервиса токенов.
var (
	ErrInvalidAlgorithm = errors.New("invalid signing algorithm")
	ErrEmptySecretKey   = errors.New("empty secret key")
)

// Claims - тело токена в формате библиотеки JWT. Поля указатели, чтобы отличать отсутствие от нуля.
// issuedAt хранится в миллисекундах Unix.
type Claims struct {
	UserID *int64 `json:"userId"`
	Issued *int64 `json:"issuedAt"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService на HS256.
type ServiceJWT struct {
	secretKey []byte
	now       func() time.Time
}

// NewJWT создает новый экземпляр сервиса JWT. now может быть nil, тогда используется time.Now.
func NewJWT(secretKey string, now func() time.Time) *ServiceJWT {
	if now == nil {
		now = time.Now
	}
	return &ServiceJWT{secretKey: []byte(secretKey), now: now}
}

// Issue выпускает токен с идентификатором пользователя и текущим временем.
func (s *ServiceJWT) Issue(ctx context.Context, userID int64) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodIssue), zap.Int64("userID", userID))
	log.Debug(ctx, msgIssuingToken)

	if len(s.secretKey) == 0 {
		log.Error(ctx, errSigningToken, zap.Error(ErrEmptySecretKey))
		return "", fmt.Errorf("%s: %w", errCtxIssuingToken, ErrEmptySecretKey)
	}

	issued := s.now().UnixMilli()
	claims := Claims{UserID: &userID, Issued: &issued}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxIssuingToken, err)
	}

	log.Debug(ctx, msgTokenIssued, zap.Int64("issuedAt", issued))
	return tokenString, nil
}

// Parse проверяет подпись и алгоритм токена и извлекает обязательные поля.
func (s *ServiceJWT) Parse(ctx context.Context, tokenString string) (*services.TokenClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodParse))
	log.Debug(ctx, msgValidatingToken)

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		log.Debug(ctx, msgInvalidToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxParsingToken, entities.ErrInvalidToken)
	}

	if claims.UserID == nil || claims.Issued == nil {
		log.Debug(ctx, msgMissingClaims)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, entities.ErrInvalidToken)
	}

	log.Debug(ctx, msgTokenParsed, zap.Int64("userID", *claims.UserID))
	return &services.TokenClaims{UserID: *claims.UserID, IssuedAt: *claims.Issued}, nil
}
