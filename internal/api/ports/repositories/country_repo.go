package repositories

import (
	"context"

	"geoprofiles/internal/api/domain/entities"
)

// CountryRepository - доступ к справочнику стран только на чтение.
type CountryRepository interface {
	// List возвращает страны из указанных регионов, отсортированные по alpha2. Пустой список регионов означает все страны.
	List(ctx context.Context, regions []string) ([]entities.Country, error)

	FindByAlpha2(ctx context.Context, alpha2 string) (*entities.Country, error)
}
