package repositories

import (
	"context"

	"geoprofiles/internal/api/domain/entities"
)

// UserRepository определяет интерфейс для операций сохранения данных пользователя.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id int64) (*entities.User, error)

	FindByLogin(ctx context.Context, login string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	FindByPhone(ctx context.Context, phone string) (*entities.User, error)

	// Update сохраняет изменяемые поля профиля (без пароля).
	Update(ctx context.Context, user *entities.User) (*entities.User, error)

	// UpdatePassword одной командой меняет хэш и момент смены пароля.
	UpdatePassword(ctx context.Context, id int64, hash string, setAt int64) error
}
