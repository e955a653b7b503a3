package app_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"geoprofiles/internal/api/domain/entities"
	"geoprofiles/internal/api/domain/services"
)

type mockUserRepository struct {
	mock.Mock
}

func userResult(args mock.Arguments) (*entities.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	return userResult(m.Called(ctx, user))
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	return userResult(m.Called(ctx, id))
}

func (m *mockUserRepository) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	return userResult(m.Called(ctx, login))
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return userResult(m.Called(ctx, email))
}

func (m *mockUserRepository) FindByPhone(ctx context.Context, phone string) (*entities.User, error) {
	return userResult(m.Called(ctx, phone))
}

func (m *mockUserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if echo, ok := args.Get(0).(func(context.Context, *entities.User) *entities.User); ok {
		return echo(ctx, user), args.Error(1)
	}
	return userResult(args)
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id int64, hash string, setAt int64) error {
	return m.Called(ctx, id, hash, setAt).Error(0)
}

type mockCountryRepository struct {
	mock.Mock
}

func (m *mockCountryRepository) List(ctx context.Context, regions []string) ([]entities.Country, error) {
	args := m.Called(ctx, regions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Country), args.Error(1)
}

func (m *mockCountryRepository) FindByAlpha2(ctx context.Context, alpha2 string) (*entities.Country, error) {
	args := m.Called(ctx, alpha2)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Country), args.Error(1)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) Parse(ctx context.Context, token string) (*services.TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenClaims), args.Error(1)
}
