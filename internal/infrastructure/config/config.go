package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Identity IdentityConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

// IdentityConfig controls how identity claims are read and resolved.
//
// AutoCreate provisions a base-role record for any identity the store has
// never seen. Because the identity claim is an unverified header, enabling it
// lets anyone who can set that header create an account — keep it off unless
// an upstream gateway already authenticates callers.
type IdentityConfig struct {
	HeaderName   string        `env:"IDENTITY_HEADER,        default=X-User-Email"`
	AutoCreate   bool          `env:"IDENTITY_AUTO_CREATE,   default=false"`
	CacheEnabled bool          `env:"IDENTITY_CACHE_ENABLED, default=false"`
	CacheTTL     time.Duration `env:"IDENTITY_CACHE_TTL,     default=30s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=identity_gateway"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
