// Package repositories определяет порты хранилища.
package repositories

import "errors"

// Ошибки хранилища. Сценарии переводят их в причины отказа для клиента.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrLoginTaken     = errors.New("login already taken")
	ErrEmailTaken     = errors.New("email already taken")
	ErrPhoneTaken     = errors.New("phone already taken")
	ErrUnknownCountry = errors.New("country code does not exist")
)
