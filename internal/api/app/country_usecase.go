package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"geoprofiles/internal/api/domain/entities"
	"geoprofiles/internal/api/ports/repositories"
	"geoprofiles/pkg/logger"
)

const (
	msgErrListCountries = "failed to list countries"
	msgErrFindCountry   = "failed to find country"

	errCtxListingCountries = "listing countries"
	errCtxFindingCountry   = "finding country"
)

// CountryUseCaseImpl читает справочник стран.
type CountryUseCaseImpl struct {
	countryRepo repositories.CountryRepository
}

// NewCountryUseCase создает новый экземпляр сервиса справочника стран.
func NewCountryUseCase(countryRepo repositories.CountryRepository) *CountryUseCaseImpl {
	return &CountryUseCaseImpl{countryRepo: countryRepo}
}

// ListByRegions возвращает страны из указанных регионов или все страны, если регионы не заданы.
// Пустой результат фильтрации считается ошибкой, пустой справочник без фильтра нет.
func (c *CountryUseCaseImpl) ListByRegions(ctx context.Context, regions []string) ([]entities.Country, error) {
	countries, err := c.countryRepo.List(ctx, regions)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrListCountries, zap.Strings("regions", regions), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingCountries, err)
	}
	if len(countries) == 0 && len(regions) > 0 {
		return nil, fmt.Errorf("%s: %w", errCtxListingCountries, entities.ErrCountriesNotFound)
	}
	if countries == nil {
		countries = []entities.Country{}
	}
	return countries, nil
}

// GetByAlpha2 возвращает страну по двухбуквенному коду.
func (c *CountryUseCaseImpl) GetByAlpha2(ctx context.Context, alpha2 string) (*entities.Country, error) {
	country, err := c.countryRepo.FindByAlpha2(ctx, alpha2)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxFindingCountry, entities.ErrCountryNotFound)
		}
		logger.Log(ctx).Error(ctx, msgErrFindCountry, zap.String("alpha2", alpha2), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingCountry, err)
	}
	return country, nil
}
