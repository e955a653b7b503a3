package handlers

import (
	"github.com/gofiber/fiber/v3"

	"geoprofiles/internal/api/adapters/http/middleware"
	"geoprofiles/internal/api/adapters/http/respond"
	"geoprofiles/internal/api/app/dto"
)

// Countries возвращает страны, отфильтрованные по повторяющемуся параметру region.
func (h *Handler) Countries(c fiber.Ctx) error {
	var regions []string
	for _, r := range c.Request().URI().QueryArgs().PeekMulti("region") {
		regions = append(regions, string(r))
	}

	countries, err := h.countries.ListByRegions(middleware.RequestContext(c), regions)
	if err != nil {
		return fail(c, err)
	}

	return respond.JSON(c, fiber.StatusOK, dto.NewCountryViews(countries))
}

// Country возвращает страну по коду alpha2.
func (h *Handler) Country(c fiber.Ctx) error {
	country, err := h.countries.GetByAlpha2(middleware.RequestContext(c), c.Params("alpha2"))
	if err != nil {
		return fail(c, err)
	}

	return respond.JSON(c, fiber.StatusOK, dto.NewCountryView(country))
}
