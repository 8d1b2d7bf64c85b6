package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
// JWT_SECRET and DATABASE_URL are required: nothing in the service can sign,
// verify or persist without them, so their absence is startup-fatal.
type Config struct {
	Port          int           `envconfig:"PORT" default:"8080"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseURL   string        `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret     string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL      time.Duration `envconfig:"TOKEN_TTL" default:"2h"`
	BcryptCost    int           `envconfig:"BCRYPT_COST" default:"10"`
	AdminEmail    string        `envconfig:"ADMIN_EMAIL" default:""`
	AdminPassword string        `envconfig:"ADMIN_PASSWORD" default:""`
	Version       string        `envconfig:"VERSION" default:"dev"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
