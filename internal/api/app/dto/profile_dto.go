package dto

import "geoprofiles/internal/api/domain/entities"

// ProfileView - публичное представление пользователя. Хэш пароля и id не отдаются.
type ProfileView struct {
	Login       string `json:"login"`
	Email       string `json:"email"`
	CountryCode string `json:"countryCode"`
	IsPublic    bool   `json:"isPublic"`
	Phone       string `json:"phone"`
	Image       string `json:"image,omitempty"`
}

// NewProfileView строит представление профиля.
func NewProfileView(u *entities.User) ProfileView {
	return ProfileView{
		Login:       u.Login,
		Email:       u.Email,
		CountryCode: u.CountryCode,
		IsPublic:    u.IsPublic,
		Phone:       u.Phone,
		Image:       u.Image,
	}
}

// PatchProfileRequest - частичное изменение профиля. Отсутствующие поля остаются nil.
type PatchProfileRequest struct {
	Login       *string `json:"login"`
	Email       *string `json:"email"`
	CountryCode *string `json:"countryCode"`
	IsPublic    *bool   `json:"isPublic"`
	Phone       *string `json:"phone"`
	Image       *string `json:"image"`
}

// ToPatch переводит запрос в доменную структуру.
func (r PatchProfileRequest) ToPatch() entities.ProfilePatch {
	return entities.ProfilePatch{
		Login:       r.Login,
		Email:       r.Email,
		CountryCode: r.CountryCode,
		IsPublic:    r.IsPublic,
		Phone:       r.Phone,
		Image:       r.Image,
	}
}

// UpdatePasswordRequest - запрос на смену пароля.
type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}
