package handlers

import (
	"github.com/gofiber/fiber/v3"

	"geoprofiles/internal/api/adapters/http/middleware"
	"geoprofiles/internal/api/adapters/http/respond"
	"geoprofiles/internal/api/app/dto"
	"geoprofiles/internal/api/domain/entities"
)

// MyProfile возвращает профиль владельца токена.
func (h *Handler) MyProfile(c fiber.Ctx, user *entities.User) error {
	return respond.JSON(c, fiber.StatusOK, dto.NewProfileView(user))
}

// PatchMyProfile применяет частичное изменение профиля.
func (h *Handler) PatchMyProfile(c fiber.Ctx, user *entities.User) error {
	var req dto.PatchProfileRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	updated, err := h.profiles.Patch(middleware.RequestContext(c), user, req.ToPatch())
	if err != nil {
		return fail(c, err)
	}

	return respond.JSON(c, fiber.StatusOK, dto.NewProfileView(updated))
}

// UpdatePassword меняет пароль владельца токена.
func (h *Handler) UpdatePassword(c fiber.Ctx, user *entities.User) error {
	var req dto.UpdatePasswordRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	if err := h.profiles.ChangePassword(middleware.RequestContext(c), user, req.OldPassword, req.NewPassword); err != nil {
		return fail(c, err)
	}

	return respond.JSON(c, fiber.StatusOK, dto.StatusOK)
}

// Profile возвращает профиль по логину с учетом видимости.
func (h *Handler) Profile(c fiber.Ctx, user *entities.User) error {
	target, err := h.profiles.Lookup(middleware.RequestContext(c), user, c.Params("login"))
	if err != nil {
		return fail(c, err)
	}

	return respond.JSON(c, fiber.StatusOK, dto.NewProfileView(target))
}
