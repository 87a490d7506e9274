package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Observ   ObservabilityConfig
	Catalog  CatalogConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	URL  string
	Name string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

type CatalogConfig struct {
	SeedOnStartup bool
}

func Load() *Config {
	_ = godotenv.Load()

	seedOnStartup, err := strconv.ParseBool(getEnv("SEED_ON_STARTUP", "true"))
	if err != nil {
		seedOnStartup = true
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			URL:  getEnv("DATABASE_URL", "mongodb://localhost:27017"),
			Name: getEnv("DATABASE_NAME", "storefront"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
		Catalog: CatalogConfig{
			SeedOnStartup: seedOnStartup,
		},
	}

	log.Printf("Config loaded: env=%s, port=%s, database=%s", cfg.Server.Env, cfg.Server.Port, cfg.Database.Name)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
