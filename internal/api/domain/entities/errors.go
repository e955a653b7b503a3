package entities

import "errors"

// Виды ошибок. По ним транспортный слой выбирает код ответа.
var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// ReasonError несет причину отказа, которая уходит клиенту как есть.
type ReasonError struct {
	Kind   error
	Reason string
}

func (e *ReasonError) Error() string {
	return e.Reason
}

// Unwrap позволяет проверять вид ошибки через errors.Is.
func (e *ReasonError) Unwrap() error {
	return e.Kind
}

func reason(kind error, text string) *ReasonError {
	return &ReasonError{Kind: kind, Reason: text}
}

// Ошибки регистрации и изменения профиля.
var (
	ErrMissingData        = reason(ErrValidation, "missing data")
	ErrNoSuchCountry      = reason(ErrValidation, "no such country")
	ErrBadPhoneNumber     = reason(ErrValidation, "bad phone number")
	ErrTooLongImage       = reason(ErrValidation, "too long image")
	ErrTooLongLogin       = reason(ErrValidation, "too long login")
	ErrTooLongEmail       = reason(ErrValidation, "too long email")
	ErrTooLongPhone       = reason(ErrValidation, "too long phone")
	ErrWrongPhoneFormat   = reason(ErrValidation, "wrong phone format")
	ErrTooBigImage        = reason(ErrValidation, "too big image")
	ErrNotUniqEmail       = reason(ErrConflict, "not uniq email")
	ErrNotUniqLogin       = reason(ErrConflict, "not uniq login")
	ErrNotUniqPhone       = reason(ErrConflict, "not uniq phone")
	ErrNotUniqPhoneNumber = reason(ErrConflict, "not uniq phone number")
)

// Ошибки проверки пароля.
var (
	ErrPasswordLength    = reason(ErrValidation, "length error")
	ErrPasswordNoLatin   = reason(ErrValidation, "no latin symbols")
	ErrPasswordNoNumbers = reason(ErrValidation, "no numbers")
	ErrTooLongPassword   = reason(ErrValidation, "too long password")
	ErrOldPassword       = reason(ErrForbidden, "old password error")
)

// Ошибки входа и проверки токена.
var (
	ErrNoSuchUser    = reason(ErrUnauthorized, "no such user")
	ErrWrongPassword = reason(ErrUnauthorized, "wrong password")
	ErrInvalidToken  = reason(ErrUnauthorized, "invalid token")
	ErrUserNotFound  = reason(ErrUnauthorized, "user not found")
	ErrTokenExpired  = reason(ErrUnauthorized, "token expired")
	ErrStaleToken    = reason(ErrUnauthorized, "stale token")
)

// Ошибки просмотра чужих профилей.
var (
	ErrNoUserWithLogin  = reason(ErrForbidden, "no user with such login")
	ErrNotPublicProfile = reason(ErrForbidden, "not public profile")
)

// Ошибки справочника стран. Пустая выборка по регионам считается ошибкой запроса.
var (
	ErrCountriesNotFound = reason(ErrValidation, "not found")
	ErrCountryNotFound   = reason(ErrNotFound, "not found")
)

// ErrInvalidRequest возвращается при неразбираемом теле запроса.
var ErrInvalidRequest = reason(ErrValidation, "invalid request")
