package api

import (
	"context"

	"geoprofiles/internal/api/domain/entities"
)

// CountryUseCase определяет чтение справочника стран.
type CountryUseCase interface {
	ListByRegions(ctx context.Context, regions []string) ([]entities.Country, error)

	GetByAlpha2(ctx context.Context, alpha2 string) (*entities.Country, error)
}
