package main

import (
	"turfbook/config"
	"turfbook/di"
	"turfbook/helper"
	"turfbook/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Turfbook API
// @version 1.0
// @description Turf slot calendars and bookings.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
