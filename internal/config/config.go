package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string `env:"ENV" env-default:"local"`
	DatabaseURL string `env:"DATABASE_URL" env-required:"true"`
	HTTP        HTTPConfig
	CORS        CORSConfig
	Matching    MatchingConfig
	Notify      NotifyConfig
}

type HTTPConfig struct {
	Port            int           `env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"15s"`
	// PublicURL — внешний адрес API, из него строятся @id в JSON-LD
	PublicURL string `env:"HTTP_PUBLIC_URL" env-default:"http://localhost:8080"`
}

// CORSConfig — разрешённые источники для браузерного клиента.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

// MatchingConfig — параметры сопоставления.
type MatchingConfig struct {
	// CandidateLimit — сколько строк максимум забирает предфильтр из БД
	CandidateLimit int `env:"MATCH_CANDIDATE_LIMIT" env-default:"5000"`
	// RefreshConcurrency — сколько hot sheet пересчитывается параллельно
	RefreshConcurrency int `env:"MATCH_REFRESH_CONCURRENCY" env-default:"4"`
}

// NotifyConfig — постановка уведомлений покупателям в очередь.
type NotifyConfig struct {
	Enabled bool `env:"NOTIFY_ENABLE" env-default:"true"`
}

func MustLoad() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("cannot read config from environment: " + err.Error())
	}
	return &cfg
}
