package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/unklstewy/shipcommand/internal/logging"
	"github.com/unklstewy/shipcommand/internal/sim"
	"github.com/unklstewy/shipcommand/pkg/config"
)

var (
	configPath = flag.String("config", "configs/config.json", "Path to configuration file")
	logPath    = flag.String("log", "plot.log", "File that receives simulation logs")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	logger := logging.NewWriterLogger(logFile, logging.LevelFromEnv())

	world, _, err := sim.FromConfig(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create world: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := world.Run(ctx); err != nil {
			logger.Error(ctx, "simulation stopped", err)
		}
	}()

	app := NewApp(world)
	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
