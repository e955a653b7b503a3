package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"geoprofiles/internal/api/domain/entities"
	"geoprofiles/internal/api/domain/services"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     error
	}{
		{"valid", "abc123", nil},
		{"valid with mixed symbols", "$aba4821FWfew01#.fewA$", nil},
		{"empty", "", entities.ErrPasswordLength},
		{"too short", "ab1", entities.ErrPasswordLength},
		{"five chars", "abc12", entities.ErrPasswordLength},
		{"length checked before letters", "12345", entities.ErrPasswordLength},
		{"uppercase only", "ABCDEF123", entities.ErrPasswordNoLatin},
		{"digits only", "123456", entities.ErrPasswordNoLatin},
		{"cyrillic is not latin", "пароль123", entities.ErrPasswordNoLatin},
		{"no digits", "abcdefgh", entities.ErrPasswordNoNumbers},
		{"letters checked before digits", "ABCDEFGH", entities.ErrPasswordNoLatin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := services.ValidatePassword(tt.password)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTokenClaims(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	claims := services.TokenClaims{UserID: 7, IssuedAt: issued.UnixMilli()}
	ttl := services.DefaultTokenTTL

	t.Run("fresh", func(t *testing.T) {
		assert.False(t, claims.Expired(issued, ttl))
		assert.False(t, claims.Expired(issued.Add(time.Hour), ttl))
	})

	t.Run("exactly ttl is still valid", func(t *testing.T) {
		assert.False(t, claims.Expired(issued.Add(ttl), ttl))
	})

	t.Run("past ttl", func(t *testing.T) {
		assert.True(t, claims.Expired(issued.Add(ttl+time.Second), ttl))
		assert.True(t, claims.Expired(issued.Add(ttl+time.Millisecond), ttl))
	})

	t.Run("stale", func(t *testing.T) {
		assert.False(t, claims.Stale(issued.UnixMilli()-1))
		assert.False(t, claims.Stale(issued.UnixMilli()))
		assert.True(t, claims.Stale(issued.UnixMilli()+1))
	})

	t.Run("password changed later within the same second", func(t *testing.T) {
		changed := issued.Add(300 * time.Millisecond)
		assert.Equal(t, issued.Unix(), changed.Unix())
		assert.True(t, claims.Stale(changed.UnixMilli()))
	})
}
