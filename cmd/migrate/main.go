package main

import (
	"os"

	"turfbook/config"
	"turfbook/helper"
	"turfbook/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration action is required: up, down, step-up, drop or version")
	}

	if err := helper.Runner(cfg, helper.MigrationAction(os.Args[1])); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
