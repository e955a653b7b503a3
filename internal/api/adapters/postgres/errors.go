package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"geoprofiles/internal/api/ports/repositories"
)

// Коды ошибок Postgres, которые переводятся в ошибки хранилища.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Имена ограничений из migrations/api.
const (
	constraintLoginKey   = "users_login_key"
	constraintEmailKey   = "users_email_key"
	constraintPhoneKey   = "users_phone_key"
	constraintCountryKey = "users_country_code_fkey"
)

// mapConstraintError переводит нарушение известного ограничения в ошибку хранилища.
// Для прочих ошибок возвращает nil.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case constraintLoginKey:
			return repositories.ErrLoginTaken
		case constraintEmailKey:
			return repositories.ErrEmailTaken
		case constraintPhoneKey:
			return repositories.ErrPhoneTaken
		}
	case pgForeignKeyViolation:
		if pgErr.ConstraintName == constraintCountryKey {
			return repositories.ErrUnknownCountry
		}
	}
	return nil
}
