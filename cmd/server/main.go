package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/chnbi/termbridge/internal/config"
	"github.com/chnbi/termbridge/internal/logger"
	"github.com/chnbi/termbridge/internal/server"
)

func main() {
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded environment from .env")
	}

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Warn("could not load config file, using defaults", "path", cfgPath, "error", err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize server", "error", err)
	}

	r := srv.SetupRouter()
	log.Info("starting server", "port", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("server exited", "error", err)
	}
}
