package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	Port    string  `env:"PORT" envDefault:"8080"`
	Mongo   Mongo   `envPrefix:"MONGO_"`
	JWT     JWT     `envPrefix:"JWT_"`
	Storage Storage `envPrefix:"MINIO_"`
}

// Mongo contains document store connection parameters.
type Mongo struct {
	URI      string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"DB" envDefault:"flowfunnels"`
}

// JWT contains token signing parameters.
type JWT struct {
	Secret     string `env:"SECRET" envDefault:"devsecret"`
	Algorithm  string `env:"ALGORITHM" envDefault:"HS256"`
	TTLMinutes int    `env:"TTL_MINUTES" envDefault:"43200"` // 30 days
}

// Storage contains object storage parameters for uploaded assets.
type Storage struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY" envDefault:"minioadmin"`
	SecretKey string `env:"SECRET_KEY" envDefault:"minioadmin"`
	Bucket    string `env:"BUCKET_NAME" envDefault:"funnel-assets"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
