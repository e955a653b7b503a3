// Package dto содержит структуры запросов и ответов HTTP API.
package dto

import "geoprofiles/internal/api/domain/entities"

// RegisterRequest представляет запрос на регистрацию.
// IsPublic - указатель: отсутствующее поле означает публичный профиль.
type RegisterRequest struct {
	Login       string `json:"login"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CountryCode string `json:"countryCode"`
	IsPublic    *bool  `json:"isPublic"`
	Phone       string `json:"phone"`
	Image       string `json:"image"`
}

// ToRegistration переводит запрос в доменную структуру.
func (r RegisterRequest) ToRegistration() entities.Registration {
	isPublic := true
	if r.IsPublic != nil {
		isPublic = *r.IsPublic
	}
	return entities.Registration{
		Login:       r.Login,
		Email:       r.Email,
		Password:    r.Password,
		CountryCode: r.CountryCode,
		IsPublic:    isPublic,
		Phone:       r.Phone,
		Image:       r.Image,
	}
}

// RegisterResponse - ответ на успешную регистрацию.
type RegisterResponse struct {
	Profile ProfileView `json:"profile"`
}

// SignInRequest представляет запрос на вход.
type SignInRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// SignInResponse содержит выданный токен.
type SignInResponse struct {
	Token string `json:"token"`
}

// StatusResponse - ответ без данных.
type StatusResponse struct {
	Status string `json:"status"`
}

// StatusOK - тело успешного ответа без данных.
var StatusOK = StatusResponse{Status: "ok"}

// ErrorResponse - тело ответа с причиной отказа.
type ErrorResponse struct {
	Reason string `json:"reason"`
}
