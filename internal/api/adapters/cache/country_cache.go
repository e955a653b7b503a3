package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"geoprofiles/internal/api/domain/entities"
	"geoprofiles/internal/api/metrics"
	"geoprofiles/internal/api/ports/cache"
	"geoprofiles/internal/api/ports/repositories"
	"geoprofiles/internal/api/resilience"
	"geoprofiles/pkg/logger"
)

// CountriesCacheName - метка кэша в метриках и логах.
const CountriesCacheName = "countries"

const (
	keyPrefixAlpha2  = "countries:alpha2:"
	keyPrefixRegions = "countries:regions:"
	keyAllCountries  = "countries:all"

	msgCacheFault   = "country cache unavailable, reading from database"
	msgCacheCorrupt = "dropping undecodable country cache entry"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CountryRepository кэширует ответы репозитория стран в Redis.
// Сбои кэша не ломают запрос: они пишутся в лог, а данные берутся из next.
type CountryRepository struct {
	next    repositories.CountryRepository
	cache   cache.Cache
	ttl     time.Duration
	breaker *resilience.CircuitBreaker
	metrics metrics.Recorder
}

// NewCountryRepository оборачивает next кэшем. rec может быть nil.
func NewCountryRepository(
	next repositories.CountryRepository,
	c cache.Cache,
	ttl time.Duration,
	breaker *resilience.CircuitBreaker,
	rec metrics.Recorder,
) *CountryRepository {
	if breaker == nil {
		breaker = resilience.NewCircuitBreaker(CountriesCacheName, resilience.DefaultCircuitBreakerConfig())
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &CountryRepository{next: next, cache: c, ttl: ttl, breaker: breaker, metrics: rec}
}

// List возвращает страны по регионам, сначала заглядывая в кэш.
func (r *CountryRepository) List(ctx context.Context, regions []string) ([]entities.Country, error) {
	key := RegionsKey(regions)

	var countries []entities.Country
	if r.lookup(ctx, key, &countries) {
		return countries, nil
	}

	countries, err := r.next.List(ctx, regions)
	if err != nil {
		return nil, err
	}

	r.store(ctx, key, countries)
	return countries, nil
}

// FindByAlpha2 возвращает страну по коду, сначала заглядывая в кэш. Отсутствие страны не кэшируется.
func (r *CountryRepository) FindByAlpha2(ctx context.Context, alpha2 string) (*entities.Country, error) {
	key := keyPrefixAlpha2 + alpha2

	var country entities.Country
	if r.lookup(ctx, key, &country) {
		return &country, nil
	}

	found, err := r.next.FindByAlpha2(ctx, alpha2)
	if err != nil {
		return nil, err
	}

	r.store(ctx, key, found)
	return found, nil
}

// lookup читает и декодирует значение. Возвращает false при промахе или любом сбое.
func (r *CountryRepository) lookup(ctx context.Context, key string, dst interface{}) bool {
	var raw string
	hit := false

	err := r.breaker.Execute(ctx, func() error {
		v, err := r.cache.Get(ctx, key)
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil
		}
		if err != nil {
			return err
		}
		raw, hit = v, true
		return nil
	})
	if err != nil {
		r.metrics.RecordCacheLookup(CountriesCacheName, metrics.CacheError)
		logger.Log(ctx).Warn(ctx, msgCacheFault, zap.String("key", key), zap.Error(err))
		return false
	}
	if !hit {
		r.metrics.RecordCacheLookup(CountriesCacheName, metrics.CacheMiss)
		return false
	}

	if err := json.UnmarshalFromString(raw, dst); err != nil {
		r.metrics.RecordCacheLookup(CountriesCacheName, metrics.CacheError)
		logger.Log(ctx).Warn(ctx, msgCacheCorrupt, zap.String("key", key), zap.Error(err))
		_ = r.breaker.Execute(ctx, func() error { return r.cache.Delete(ctx, key) })
		return false
	}

	r.metrics.RecordCacheLookup(CountriesCacheName, metrics.CacheHit)
	return true
}

func (r *CountryRepository) store(ctx context.Context, key string, value interface{}) {
	raw, err := json.MarshalToString(value)
	if err != nil {
		logger.Log(ctx).Warn(ctx, msgCacheFault, zap.String("key", key), zap.Error(fmt.Errorf("encode: %w", err)))
		return
	}

	if err := r.breaker.Execute(ctx, func() error { return r.cache.Set(ctx, key, raw, r.ttl) }); err != nil {
		logger.Log(ctx).Warn(ctx, msgCacheFault, zap.String("key", key), zap.Error(err))
	}
}

// RegionsKey строит ключ кэша для набора регионов. Порядок и повторы регионов не влияют на ключ.
// Каждый регион пишется с префиксом длины, поэтому разделитель внутри значения не склеивает разные наборы.
func RegionsKey(regions []string) string {
	if len(regions) == 0 {
		return keyAllCountries
	}

	uniq := make(map[string]struct{}, len(regions))
	sorted := make([]string, 0, len(regions))
	for _, region := range regions {
		if _, seen := uniq[region]; seen {
			continue
		}
		uniq[region] = struct{}{}
		sorted = append(sorted, region)
	}
	sort.Strings(sorted)

	var key strings.Builder
	key.WriteString(keyPrefixRegions)
	for _, region := range sorted {
		key.WriteString(strconv.Itoa(len(region)))
		key.WriteByte(':')
		key.WriteString(region)
	}
	return key.String()
}
