package services

import "time"

// DefaultTokenTTL - время жизни токена по умолчанию.
const DefaultTokenTTL = 24 * time.Hour

// TokenClaims - содержимое токена сессии.
type TokenClaims struct {
	UserID   int64
	// IssuedAt - момент выпуска в миллисекундах Unix.
	IssuedAt int64
}

// Expired сообщает, что возраст токена превысил ttl. Граница включительна: ровно ttl еще допустимо.
func (c TokenClaims) Expired(now time.Time, ttl time.Duration) bool {
	return now.UnixMilli()-c.IssuedAt > ttl.Milliseconds()
}

// Stale сообщает, что токен выпущен до последней смены пароля.
// lastPasswordSet, как и IssuedAt, хранится в миллисекундах.
func (c TokenClaims) Stale(lastPasswordSet int64) bool {
	return c.IssuedAt < lastPasswordSet
}
