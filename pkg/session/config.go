package session

import "time"

// Config is read from JWT_* variables.
type Config struct {
	Secret     string        `env:"JWT_SECRET"`
	Algorithm  string        `env:"JWT_ALGORITHM" envDefault:"HS256"`
	CookieName string        `env:"JWT_COOKIE_NAME" envDefault:"jwt"`
	Leeway     time.Duration `env:"JWT_LEEWAY" envDefault:"0s"`
	// BlacklistEnabled checks every token against Redis. Lookups that fail
	// let the token through.
	BlacklistEnabled bool   `env:"JWT_BLACKLIST_ENABLED" envDefault:"true"`
	BlacklistPrefix  string `env:"JWT_BLACKLIST_PREFIX" envDefault:"blacklist:"`
}
