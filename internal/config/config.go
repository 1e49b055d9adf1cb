// Package config reads app settings from env (and optional .env file) with defaults
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wb-go/wbf/config"
)

const (
	defaultPort       = "3000"
	defaultGinMode    = "release"
	defaultStorageDir = "./uploads"
	defaultBackend    = "memory"
	defaultMigrations = "./migrations"
	defaultTopic      = "image-uploads"
	defaultLogLevel   = "info"
)

type AppConfig struct {
	Port           string
	GinMode        string
	StorageDir     string
	StoreBackend   string
	PostgresDSN    string
	MigrationsPath string
	KafkaBroker    string
	KafkaTopic     string
	LogLevel       string
}

// Load - энвы имеют приоритет, .env подхватывается только если файл существует
func Load(envFiles ...string) (*AppConfig, error) {
	appConfig := config.New()
	appConfig.EnableEnv("")

	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		if err := appConfig.LoadEnvFiles(f); err != nil {
			return nil, fmt.Errorf("failed to load env file %q: %w", f, err)
		}
	}

	cfg := &AppConfig{
		Port:           getOr(appConfig, "APP_PORT", defaultPort),
		GinMode:        getOr(appConfig, "GIN_MODE", defaultGinMode),
		StorageDir:     getOr(appConfig, "STORAGE_DIR", defaultStorageDir),
		StoreBackend:   getOr(appConfig, "STORE_BACKEND", defaultBackend),
		PostgresDSN:    appConfig.GetString("POSTGRES_DSN"),
		MigrationsPath: getOr(appConfig, "MIGRATIONS_PATH", defaultMigrations),
		KafkaBroker:    appConfig.GetString("KAFKA_BROKER"),
		KafkaTopic:     getOr(appConfig, "KAFKA_TOPIC", defaultTopic),
		LogLevel:       getOr(appConfig, "LOG_LEVEL", defaultLogLevel),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("incorrect APP_PORT %q", c.Port)
	}

	switch c.StoreBackend {
	case "memory", "directory":
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required for postgres store backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	return nil
}

func getOr(cfg *config.Config, key, def string) string {
	if v := cfg.GetString(key); v != "" {
		return v
	}
	log.Printf("%s is empty. Using default value %q...", key, def)
	return def
}
