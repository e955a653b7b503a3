package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"geoprofiles/internal/api/app"
	"geoprofiles/internal/api/domain/entities"
	"geoprofiles/internal/api/domain/services"
	"geoprofiles/internal/api/ports/repositories"
)

var errDatabase = errors.New("database error")

func fixedClock(unixMilli int64) app.Clock {
	return func() time.Time { return time.UnixMilli(unixMilli) }
}

func validRegistration() entities.Registration {
	return entities.Registration{
		Login:       "mon1",
		Email:       "mon1@example.com",
		Password:    "secret1",
		CountryCode: "RU",
		IsPublic:    true,
		Phone:       "+79990000001",
	}
}

var russia = &entities.Country{Name: "Russian Federation", Alpha2: "RU", Alpha3: "RUS", Region: "Europe"}

func TestRegister(t *testing.T) {
	const now = int64(1_700_000_000_000)

	countryFound := func(c *mockCountryRepository) {
		c.On("FindByAlpha2", mock.Anything, "RU").Return(russia, nil).Once()
	}
	allFree := func(u *mockUserRepository) {
		u.On("FindByEmail", mock.Anything, "mon1@example.com").Return(nil, repositories.ErrRecordNotFound).Once()
		u.On("FindByLogin", mock.Anything, "mon1").Return(nil, repositories.ErrRecordNotFound).Once()
		u.On("FindByPhone", mock.Anything, "+79990000001").Return(nil, repositories.ErrRecordNotFound).Once()
	}
	other := &entities.User{ID: 7}

	tests := []struct {
		name        string
		mutate      func(r *entities.Registration)
		setupMocks  func(u *mockUserRepository, c *mockCountryRepository, p *mockPasswordService)
		expectedErr error
	}{
		{
			name:        "missing login",
			mutate:      func(r *entities.Registration) { r.Login = "" },
			setupMocks:  func(*mockUserRepository, *mockCountryRepository, *mockPasswordService) {},
			expectedErr: entities.ErrMissingData,
		},
		{
			name: "missing password wins over bad phone",
			mutate: func(r *entities.Registration) {
				r.Password = ""
				r.Phone = ""
			},
			setupMocks:  func(*mockUserRepository, *mockCountryRepository, *mockPasswordService) {},
			expectedErr: entities.ErrMissingData,
		},
		{
			name:   "unknown country",
			mutate: func(r *entities.Registration) { r.CountryCode = "ZZ" },
			setupMocks: func(_ *mockUserRepository, c *mockCountryRepository, _ *mockPasswordService) {
				c.On("FindByAlpha2", mock.Anything, "ZZ").Return(nil, repositories.ErrRecordNotFound).Once()
			},
			expectedErr: entities.ErrNoSuchCountry,
		},
		{
			name:   "empty phone",
			mutate: func(r *entities.Registration) { r.Phone = "" },
			setupMocks: func(_ *mockUserRepository, c *mockCountryRepository, _ *mockPasswordService) {
				countryFound(c)
			},
			expectedErr: entities.ErrBadPhoneNumber,
		},
		{
			name:   "phone without plus",
			mutate: func(r *entities.Registration) { r.Phone = "79990000001" },
			setupMocks: func(_ *mockUserRepository, c *mockCountryRepository, _ *mockPasswordService) {
				countryFound(c)
			},
			expectedErr: entities.ErrBadPhoneNumber,
		},
		{
			name:   "image too long",
			mutate: func(r *entities.Registration) { r.Image = strings.Repeat("i", 201) },
			setupMocks: func(_ *mockUserRepository, c *mockCountryRepository, _ *mockPasswordService) {
				countryFound(c)
			},
			expectedErr: entities.ErrTooLongImage,
		},
		{
			name:   "login too long",
			mutate: func(r *entities.Registration) { r.Login = strings.Repeat("l", 32) },
			setupMocks: func(_ *mockUserRepository, c *mockCountryRepository, _ *mockPasswordService) {
				countryFound(c)
			},
			expectedErr: entities.ErrTooLongLogin,
		},
		{
			name:   "email taken",
			mutate: func(*entities.Registration) {},
			setupMocks: func(u *mockUserRepository, c *mockCountryRepository, _ *mockPasswordService) {
				countryFound(c)
				u.On("FindByEmail", mock.Anything, "mon1@example.com").Return(other, nil).Once()
			},
			expectedErr: entities.ErrNotUniqEmail,
		},
		{
			name:   "login taken",
			mutate: func(*entities.Registration) {},
			setupMocks: func(u *mockUserRepository, c *mockCountryRepository, _ *mockPasswordService) {
				countryFound(c)
				u.On("FindByEmail", mock.Anything, "mon1@example.com").Return(nil, repositories.ErrRecordNotFound).Once()
				u.On("FindByLogin", mock.Anything, "mon1").Return(other, nil).Once()
			},
			expectedErr: entities.ErrNotUniqLogin,
		},
		{
			name:   "phone taken",
			mutate: func(*entities.Registration) {},
			setupMocks: func(u *mockUserRepository, c *mockCountryRepository, _ *mockPasswordService) {
				countryFound(c)
				u.On("FindByEmail", mock.Anything, "mon1@example.com").Return(nil, repositories.ErrRecordNotFound).Once()
				u.On("FindByLogin", mock.Anything, "mon1").Return(nil, repositories.ErrRecordNotFound).Once()
				u.On("FindByPhone", mock.Anything, "+79990000001").Return(other, nil).Once()
			},
			expectedErr: entities.ErrNotUniqPhone,
		},
		{
			name:   "weak password checked after uniqueness",
			mutate: func(r *entities.Registration) { r.Password = "secret" },
			setupMocks: func(u *mockUserRepository, c *mockCountryRepository, _ *mockPasswordService) {
				countryFound(c)
				allFree(u)
			},
			expectedErr: entities.ErrPasswordNoNumbers,
		},
		{
			name:   "concurrent insert took the login",
			mutate: func(*entities.Registration) {},
			setupMocks: func(u *mockUserRepository, c *mockCountryRepository, p *mockPasswordService) {
				countryFound(c)
				allFree(u)
				p.On("Hash", mock.Anything, "secret1").Return("hash", nil).Once()
				u.On("Create", mock.Anything, mock.Anything).Return(nil, repositories.ErrLoginTaken).Once()
			},
			expectedErr: entities.ErrNotUniqLogin,
		},
		{
			name:   "store failure",
			mutate: func(*entities.Registration) {},
			setupMocks: func(u *mockUserRepository, c *mockCountryRepository, _ *mockPasswordService) {
				countryFound(c)
				u.On("FindByEmail", mock.Anything, "mon1@example.com").Return(nil, errDatabase).Once()
			},
			expectedErr: errDatabase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUserRepository)
			countries := new(mockCountryRepository)
			passwords := new(mockPasswordService)
			tokens := new(mockTokenService)
			tt.setupMocks(users, countries, passwords)

			uc := app.NewAuthUseCase(users, countries, passwords, tokens, time.Hour, fixedClock(now))

			reg := validRegistration()
			tt.mutate(&reg)

			user, err := uc.Register(context.Background(), reg)

			require.Error(t, err)
			require.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, user)

			users.AssertExpectations(t)
			countries.AssertExpectations(t)
			passwords.AssertExpectations(t)
		})
	}

	t.Run("success", func(t *testing.T) {
		users := new(mockUserRepository)
		countries := new(mockCountryRepository)
		passwords := new(mockPasswordService)
		countryFound(countries)
		allFree(users)
		passwords.On("Hash", mock.Anything, "secret1").Return("hash", nil).Once()

		users.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.Login == "mon1" && u.PasswordHash == "hash" && u.LastPasswordSet == now && u.IsPublic
		})).Return(&entities.User{ID: 1, Login: "mon1", PasswordHash: "hash", LastPasswordSet: now}, nil).Once()

		uc := app.NewAuthUseCase(users, countries, passwords, new(mockTokenService), 0, fixedClock(now))

		user, err := uc.Register(context.Background(), validRegistration())

		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		users.AssertExpectations(t)
	})
}

func TestSignIn(t *testing.T) {
	stored := &entities.User{ID: 3, Login: "mon1", PasswordHash: "hash"}

	t.Run("unknown login", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("FindByLogin", mock.Anything, "ghost").Return(nil, repositories.ErrRecordNotFound).Once()
		uc := app.NewAuthUseCase(users, new(mockCountryRepository), new(mockPasswordService), new(mockTokenService), 0, nil)

		token, err := uc.SignIn(context.Background(), "ghost", "secret1")

		require.ErrorIs(t, err, entities.ErrNoSuchUser)
		assert.ErrorIs(t, err, entities.ErrUnauthorized)
		assert.Empty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(mockUserRepository)
		passwords := new(mockPasswordService)
		users.On("FindByLogin", mock.Anything, "mon1").Return(stored, nil).Once()
		passwords.On("Verify", mock.Anything, "nope", "hash").Return(false, nil).Once()
		uc := app.NewAuthUseCase(users, new(mockCountryRepository), passwords, new(mockTokenService), 0, nil)

		_, err := uc.SignIn(context.Background(), "mon1", "nope")

		require.ErrorIs(t, err, entities.ErrWrongPassword)
	})

	t.Run("success", func(t *testing.T) {
		users := new(mockUserRepository)
		passwords := new(mockPasswordService)
		tokens := new(mockTokenService)
		users.On("FindByLogin", mock.Anything, "mon1").Return(stored, nil).Once()
		passwords.On("Verify", mock.Anything, "secret1", "hash").Return(true, nil).Once()
		tokens.On("Issue", mock.Anything, int64(3)).Return("signed", nil).Once()
		uc := app.NewAuthUseCase(users, new(mockCountryRepository), passwords, tokens, 0, nil)

		token, err := uc.SignIn(context.Background(), "mon1", "secret1")

		require.NoError(t, err)
		assert.Equal(t, "signed", token)
		tokens.AssertExpectations(t)
	})
}

func TestAuthenticate(t *testing.T) {
	const issued = int64(1_700_000_000_000)

	tests := []struct {
		name        string
		now         int64
		setupMocks  func(u *mockUserRepository, tk *mockTokenService)
		expectedErr error
	}{
		{
			name: "garbled token",
			setupMocks: func(_ *mockUserRepository, tk *mockTokenService) {
				tk.On("Parse", mock.Anything, "tok").Return(nil, entities.ErrInvalidToken).Once()
			},
			expectedErr: entities.ErrInvalidToken,
		},
		{
			name: "owner deleted",
			now:  issued,
			setupMocks: func(u *mockUserRepository, tk *mockTokenService) {
				tk.On("Parse", mock.Anything, "tok").Return(&services.TokenClaims{UserID: 9, IssuedAt: issued}, nil).Once()
				u.On("FindByID", mock.Anything, int64(9)).Return(nil, repositories.ErrRecordNotFound).Once()
			},
			expectedErr: entities.ErrUserNotFound,
		},
		{
			name: "expired beats stale",
			now:  issued + 86_400_001,
			setupMocks: func(u *mockUserRepository, tk *mockTokenService) {
				tk.On("Parse", mock.Anything, "tok").Return(&services.TokenClaims{UserID: 9, IssuedAt: issued}, nil).Once()
				u.On("FindByID", mock.Anything, int64(9)).Return(&entities.User{ID: 9, LastPasswordSet: issued + 10_000}, nil).Once()
			},
			expectedErr: entities.ErrTokenExpired,
		},
		{
			name: "issued before password change",
			now:  issued + 60_000,
			setupMocks: func(u *mockUserRepository, tk *mockTokenService) {
				tk.On("Parse", mock.Anything, "tok").Return(&services.TokenClaims{UserID: 9, IssuedAt: issued}, nil).Once()
				u.On("FindByID", mock.Anything, int64(9)).Return(&entities.User{ID: 9, LastPasswordSet: issued + 1}, nil).Once()
			},
			expectedErr: entities.ErrStaleToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUserRepository)
			tokens := new(mockTokenService)
			tt.setupMocks(users, tokens)
			uc := app.NewAuthUseCase(users, new(mockCountryRepository), new(mockPasswordService), tokens, 24*time.Hour, fixedClock(tt.now))

			user, err := uc.Authenticate(context.Background(), "tok")

			require.ErrorIs(t, err, tt.expectedErr)
			assert.ErrorIs(t, err, entities.ErrUnauthorized)
			assert.Nil(t, user)
			users.AssertExpectations(t)
			tokens.AssertExpectations(t)
		})
	}

	t.Run("token exactly at ttl and same millisecond as password change", func(t *testing.T) {
		users := new(mockUserRepository)
		tokens := new(mockTokenService)
		tokens.On("Parse", mock.Anything, "tok").Return(&services.TokenClaims{UserID: 9, IssuedAt: issued}, nil).Once()
		users.On("FindByID", mock.Anything, int64(9)).Return(&entities.User{ID: 9, Login: "mon1", LastPasswordSet: issued}, nil).Once()
		uc := app.NewAuthUseCase(users, new(mockCountryRepository), new(mockPasswordService), tokens, 24*time.Hour, fixedClock(issued+86_400_000))

		user, err := uc.Authenticate(context.Background(), "tok")

		require.NoError(t, err)
		assert.Equal(t, "mon1", user.Login)
	})
}
