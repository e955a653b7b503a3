package config

import "time"

// RateLimitConfig задает ограничение частоты запросов к /api/auth с одного IP.
type RateLimitConfig struct {
	Enabled  bool          `yaml:"enabled" env:"API_RATE_LIMIT_ENABLED" env-default:"true"`
	RPS      float64       `yaml:"rps" env:"API_RATE_LIMIT_RPS" env-default:"5"`
	Burst    int           `yaml:"burst" env:"API_RATE_LIMIT_BURST" env-default:"10"`
	IdleTTL  time.Duration `yaml:"idle_ttl" env:"API_RATE_LIMIT_IDLE_TTL" env-default:"10m"`
	Interval time.Duration `yaml:"cleanup_interval" env:"API_RATE_LIMIT_CLEANUP_INTERVAL" env-default:"1m"`
}
