// Package app содержит сценарии сервиса: регистрацию, вход, проверку токена, работу с профилем и справочником стран.
package app

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"geoprofiles/internal/api/domain/entities"
	"geoprofiles/internal/api/ports/repositories"
)

// Clock возвращает текущее время. Подменяется в тестах.
type Clock func() time.Time

func (c Clock) orDefault() Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// translate находит причину отказа для ошибки хранилища. nil означает, что ошибка в таблице не найдена.
func translate(err error, table map[error]*entities.ReasonError) *entities.ReasonError {
	for storeErr, reason := range table {
		if errors.Is(err, storeErr) {
			return reason
		}
	}
	return nil
}

// exists сообщает, найдена ли запись. ErrRecordNotFound не считается ошибкой.
func exists(user *entities.User, err error) (bool, *entities.User, error) {
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return false, nil, nil
	}
	if err != nil {
		return false, nil, err
	}
	return user != nil, user, nil
}

type finder func(ctx context.Context, value string) (*entities.User, error)

// takenByOther проверяет, занято ли значение другим пользователем. selfID = 0 означает, что своих записей нет.
func takenByOther(ctx context.Context, find finder, value string, selfID int64) (bool, error) {
	found, user, err := exists(find(ctx, value))
	if err != nil || !found {
		return false, err
	}
	return user.ID != selfID, nil
}

func tooLong(value string, limit int) bool {
	return utf8.RuneCountInString(value) > limit
}
