package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// TokenTTL is the validity window of issued unified tokens.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=168h"`

	// AggregateReadTimeout bounds each per-platform read during profile
	// aggregation; a store that exceeds it degrades to unavailable.
	AggregateReadTimeout time.Duration `env:"AGGREGATE_READ_TIMEOUT, default=3s"`

	Master     MongoConfig `env:", prefix=MASTER_"`
	Freelancer MongoConfig `env:", prefix=FREELANCER_"`
	Career     MongoConfig `env:", prefix=CAREER_"`

	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB"`
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
