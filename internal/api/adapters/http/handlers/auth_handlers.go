package handlers

import (
	"github.com/gofiber/fiber/v3"

	"geoprofiles/internal/api/adapters/http/middleware"
	"geoprofiles/internal/api/adapters/http/respond"
	"geoprofiles/internal/api/app/dto"
)

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(c fiber.Ctx) error {
	var req dto.RegisterRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	user, err := h.auth.Register(middleware.RequestContext(c), req.ToRegistration())
	if err != nil {
		return fail(c, err)
	}

	return respond.JSON(c, fiber.StatusCreated, dto.RegisterResponse{Profile: dto.NewProfileView(user)})
}

// SignIn обрабатывает запрос на вход и выдает токен.
func (h *Handler) SignIn(c fiber.Ctx) error {
	var req dto.SignInRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	token, err := h.auth.SignIn(middleware.RequestContext(c), req.Login, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return respond.JSON(c, fiber.StatusOK, dto.SignInResponse{Token: token})
}
