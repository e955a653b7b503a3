package config

import (
	"net"
	"strconv"
	"time"
)

// RedisConfig представляет конфигурацию кэша справочника стран.
type RedisConfig struct {
	Enabled      bool          `yaml:"enabled" env:"API_REDIS_ENABLED" env-default:"false"`
	Host         string        `yaml:"host" env:"API_REDIS_HOST" env-default:"localhost"`
	Port         int           `yaml:"port" env:"API_REDIS_PORT" env-default:"6379"`
	Password     string        `yaml:"password" env:"API_REDIS_PASSWORD" env-default:""`
	DB           int           `yaml:"db" env:"API_REDIS_DB" env-default:"0"`
	PoolSize     int           `yaml:"pool_size" env:"API_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle      int           `yaml:"min_idle" env:"API_REDIS_MIN_IDLE" env-default:"2"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"API_REDIS_DIAL_TIMEOUT" env-default:"5s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"API_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"API_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	DefaultTTL   time.Duration `yaml:"default_ttl" env:"API_REDIS_DEFAULT_TTL" env-default:"15m"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
