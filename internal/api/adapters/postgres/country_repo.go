package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"geoprofiles/internal/api/domain/entities"
	"geoprofiles/internal/api/ports/repositories"
	"geoprofiles/pkg/logger"
)

// CountryRepository читает справочник стран.
type CountryRepository struct {
	pool PgxPoolInterface
}

// NewCountryRepository создает репозиторий стран.
func NewCountryRepository(pool PgxPoolInterface) *CountryRepository {
	return &CountryRepository{pool: pool}
}

// List возвращает страны из указанных регионов или все, если регионы не заданы.
func (r *CountryRepository) List(ctx context.Context, regions []string) ([]entities.Country, error) {
	log := logger.Log(ctx).With(zap.String("repository", "country"), zap.String("method", "List"))

	var (
		rows pgx.Rows
		err  error
	)
	if len(regions) == 0 {
		rows, err = r.pool.Query(ctx, `
        SELECT name, alpha2, alpha3, region
        FROM countries
        ORDER BY alpha2
    `)
	} else {
		rows, err = r.pool.Query(ctx, `
        SELECT name, alpha2, alpha3, region
        FROM countries
        WHERE region = ANY($1)
        ORDER BY alpha2
    `, regions)
	}
	if err != nil {
		log.Error(ctx, "error listing countries", zap.Error(err))
		return nil, fmt.Errorf("error listing countries: %w", err)
	}
	defer rows.Close()

	countries := make([]entities.Country, 0)
	for rows.Next() {
		var c entities.Country
		if err := rows.Scan(&c.Name, &c.Alpha2, &c.Alpha3, &c.Region); err != nil {
			log.Error(ctx, "error scanning country", zap.Error(err))
			return nil, fmt.Errorf("error scanning country: %w", err)
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating countries", zap.Error(err))
		return nil, fmt.Errorf("error iterating countries: %w", err)
	}

	log.Debug(ctx, "countries listed", zap.Strings("regions", regions), zap.Int("count", len(countries)))
	return countries, nil
}

// FindByAlpha2 находит страну по двухбуквенному коду.
func (r *CountryRepository) FindByAlpha2(ctx context.Context, alpha2 string) (*entities.Country, error) {
	log := logger.Log(ctx).With(zap.String("repository", "country"), zap.String("method", "FindByAlpha2"))

	query := `
        SELECT name, alpha2, alpha3, region
        FROM countries
        WHERE alpha2 = $1
    `

	var c entities.Country
	err := r.pool.QueryRow(ctx, query, alpha2).Scan(&c.Name, &c.Alpha2, &c.Alpha3, &c.Region)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "country not found", zap.String("alpha2", alpha2))
			return nil, repositories.ErrRecordNotFound
		}
		log.Error(ctx, "error finding country", zap.Error(err))
		return nil, fmt.Errorf("error querying country by alpha2: %w", err)
	}

	return &c, nil
}
