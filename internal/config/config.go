package config

import (
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBHost     string `env:"DB_HOST,required"` // e.g. tcp(host:3306) or unix(/path/to/socket)
	DBName     string `env:"DB_NAME,required"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`
	DBTLSMode  string `env:"DB_TLS_MODE" envDefault:"false"` // passed through as the mysql tls= param

	RetentionWindow time.Duration `env:"RETENTION_WINDOW" envDefault:"48h"`
	SweepInterval   time.Duration `env:"SWEEP_INTERVAL" envDefault:"1h"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
