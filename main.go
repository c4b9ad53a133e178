package main

import (
	"log"

	"github.com/joho/godotenv"

	"storeledger/m/cmd"
	"storeledger/m/internal/config"
	"storeledger/m/internal/logger"
)

func main() {
	if err := logger.Setup(logger.DefaultConfig()); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	boot := logger.WithComponent("main")

	if err := godotenv.Load(); err != nil {
		boot.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	if err := logger.Setup(cfg.LoggerConfig()); err != nil {
		boot.Fatal().Err(err).Msg("failed to initialize logger")
	}

	cmd.Execute(cfg)
}
