package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	DatabaseDSN string `env:"DATABASE_DSN,required"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleIssuer       string `env:"GOOGLE_ISSUER" envDefault:"https://accounts.google.com"`

	// RedirectBaseURL is the externally visible base URL of this service,
	// used to build OAuth callback URLs.
	RedirectBaseURL string `env:"REDIRECT_URL,required"`

	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"3h"`
	OAuthStateTTL time.Duration `env:"OAUTH_STATE_TTL" envDefault:"10m"`

	MaxPasswordSize int `env:"MAX_PASSWORD_SIZE" envDefault:"72"`
	MaxNameSize     int `env:"MAX_NAME_SIZE" envDefault:"64"`
}

func Load() (Config, error) {
	return env.ParseAs[Config]()
}
