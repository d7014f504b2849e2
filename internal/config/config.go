package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultCountriesPath = "/paises"
	DefaultPlanetsPath   = "/planetas"
)

// Config is the collection server's configuration.
type Config struct {
	DBDriver      string
	DBSource      string
	Port          string
	Env           string
	LogLevel      string
	CountriesPath string
	PlanetsPath   string
}

// ClientConfig tells the catalog client where the collections live.
type ClientConfig struct {
	BaseURL       string
	Timeout       time.Duration
	CountriesPath string
	PlanetsPath   string
	LogLevel      string
}

// LoadDotEnv reads a .env file from the working directory if there is one.
// Variables already set in the environment win.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

func Load() (*Config, error) {
	dbSource := os.Getenv("DB_SOURCE")
	if dbSource == "" {
		return nil, fmt.Errorf("DB_SOURCE environment variable is required")
	}

	driver := getenv("DB_DRIVER", "postgres")
	if driver != "postgres" && driver != "sqlite" {
		return nil, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", driver)
	}

	return &Config{
		DBDriver:      driver,
		DBSource:      dbSource,
		Port:          getenv("SERVER_PORT", "8080"),
		Env:           getenv("ENVIRONMENT", "development"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		CountriesPath: path(getenv("COUNTRIES_PATH", DefaultCountriesPath)),
		PlanetsPath:   path(getenv("PLANETS_PATH", DefaultPlanetsPath)),
	}, nil
}

func LoadClient() (*ClientConfig, error) {
	timeout := 10 * time.Second
	if raw := os.Getenv("CATALOG_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("CATALOG_TIMEOUT: %w", err)
		}
		timeout = d
	}

	return &ClientConfig{
		BaseURL:       strings.TrimRight(getenv("CATALOG_BASE_URL", "http://localhost:8080"), "/"),
		Timeout:       timeout,
		CountriesPath: path(getenv("COUNTRIES_PATH", DefaultCountriesPath)),
		PlanetsPath:   path(getenv("PLANETS_PATH", DefaultPlanetsPath)),
		LogLevel:      getenv("LOG_LEVEL", "warn"),
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// path normalizes a route to a leading slash and no trailing one.
func path(p string) string {
	return "/" + strings.Trim(p, "/")
}
