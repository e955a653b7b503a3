// Package entities содержит сущности домена и ошибки с причинами отказа.
package entities

// Ограничения длины полей пользователя.
const (
	MaxLoginLength = 31
	MaxEmailLength = 51
	MaxPhoneLength = 21
	MaxImageLength = 200
)

// PhonePrefix - обязательный первый символ номера телефона.
const PhonePrefix = '+'

// User представляет учетную запись пользователя.
type User struct {
	ID              int64
	Login           string
	Email           string
	PasswordHash    string
	CountryCode     string
	IsPublic        bool
	Phone           string
	Image           string
	LastPasswordSet int64 // миллисекунды Unix
}

// Registration содержит данные для создания учетной записи.
type Registration struct {
	Login       string
	Email       string
	Password    string
	CountryCode string
	IsPublic    bool
	Phone       string
	Image       string
}

// ProfilePatch описывает частичное изменение профиля. nil означает, что поле не передано.
type ProfilePatch struct {
	Login       *string
	Email       *string
	CountryCode *string
	IsPublic    *bool
	Phone       *string
	Image       *string
}

// HasPhonePrefix сообщает, начинается ли номер с '+'. Пустой номер проверку не проходит.
func HasPhonePrefix(phone string) bool {
	return phone != "" && phone[0] == PhonePrefix
}
