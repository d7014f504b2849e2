package main

import (
	"context"
	"log"
	"net/http"

	"github.com/punchamoorthee/catalogops/internal/api"
	"github.com/punchamoorthee/catalogops/internal/config"
	"github.com/punchamoorthee/catalogops/internal/domain"
	"github.com/punchamoorthee/catalogops/internal/logging"
	"github.com/punchamoorthee/catalogops/internal/service"
	"github.com/punchamoorthee/catalogops/internal/store"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	db, err := store.Open(ctx, cfg.DBDriver, cfg.DBSource)
	if err != nil {
		logger.Fatal("Unable to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize Layers
	countries := store.NewCollection(db, store.Countries)
	planets := store.NewCollection(db, store.Planets)
	for _, c := range []interface{ Migrate(context.Context) error }{countries, planets} {
		if err := c.Migrate(ctx); err != nil {
			logger.Fatal("Migration failed", zap.Error(err))
		}
	}

	router := api.NewRouter(logger,
		api.NewHandler[domain.Country, domain.CountryForm](cfg.CountriesPath,
			service.NewCatalogService[domain.Country, domain.CountryForm](countries, service.ValidateCountry), logger),
		api.NewHandler[domain.Planet, domain.PlanetForm](cfg.PlanetsPath,
			service.NewCatalogService[domain.Planet, domain.PlanetForm](planets, service.ValidatePlanet), logger),
	)

	logger.Info("Server starting",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
		zap.String("driver", cfg.DBDriver),
		zap.String("countries", cfg.CountriesPath),
		zap.String("planets", cfg.PlanetsPath))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
