// Package postgres содержит репозитории пользователей и стран на PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"geoprofiles/internal/api/domain/entities"
	"geoprofiles/internal/api/ports/repositories"
	"geoprofiles/pkg/logger"
)

// PgxPoolInterface - часть pgxpool.Pool, нужная репозиториям. Позволяет подставлять pgxmock в тестах.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
}

const userColumns = `id, login, email, password_hash, country_code, is_public, phone, image, last_password_set`

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Login,
		&user.Email,
		&user.PasswordHash,
		&user.CountryCode,
		&user.IsPublic,
		&user.Phone,
		&user.Image,
		&user.LastPasswordSet,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	return r.findOne(ctx, "FindByID", "id", id)
}

// FindByLogin находит пользователя по логину.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	return r.findOne(ctx, "FindByLogin", "login", login)
}

// FindByEmail находит пользователя по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "FindByEmail", "email", email)
}

// FindByPhone находит пользователя по номеру телефона.
func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*entities.User, error) {
	return r.findOne(ctx, "FindByPhone", "phone", phone)
}

// findOne выбирает одну запись по значению колонки. column берется только из констант этого файла.
func (r *UserRepository) findOne(ctx context.Context, method, column string, value interface{}) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", method))

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.Any(column, value))
			return nil, repositories.ErrRecordNotFound
		}
		log.Error(ctx, "error finding user", zap.String("by", column), zap.Error(err))
		return nil, fmt.Errorf("error querying user by %s: %w", column, err)
	}

	return user, nil
}

// Create создает нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (login, email, password_hash, country_code, is_public, phone, image, last_password_set)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + userColumns

	created, err := scanUser(r.pool.QueryRow(ctx, query,
		user.Login,
		user.Email,
		user.PasswordHash,
		user.CountryCode,
		user.IsPublic,
		user.Phone,
		user.Image,
		user.LastPasswordSet,
	))
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			log.Debug(ctx, "constraint violation on create", zap.Error(err))
			return nil, mapped
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// Update сохраняет поля профиля пользователя.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Update"))

	query := `
        UPDATE users
        SET login = $2, email = $3, country_code = $4, is_public = $5, phone = $6, image = $7
        WHERE id = $1
        RETURNING ` + userColumns

	updated, err := scanUser(r.pool.QueryRow(ctx, query,
		user.ID,
		user.Login,
		user.Email,
		user.CountryCode,
		user.IsPublic,
		user.Phone,
		user.Image,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found for update", zap.Int64("id", user.ID))
			return nil, repositories.ErrRecordNotFound
		}
		if mapped := mapConstraintError(err); mapped != nil {
			log.Debug(ctx, "constraint violation on update", zap.Error(err))
			return nil, mapped
		}
		log.Error(ctx, "error updating user", zap.Error(err))
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return updated, nil
}

// UpdatePassword меняет хэш пароля и момент его смены. last_password_set не уменьшается.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hash string, setAt int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "UpdatePassword"))

	query := `
        UPDATE users
        SET password_hash = $2, last_password_set = GREATEST(last_password_set, $3)
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, id, hash, setAt)
	if err != nil {
		log.Error(ctx, "error updating password", zap.Error(err))
		return fmt.Errorf("error updating password: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for password update", zap.Int64("id", id))
		return repositories.ErrRecordNotFound
	}

	return nil
}
