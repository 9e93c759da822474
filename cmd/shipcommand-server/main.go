// Ship Command server
// Runs the simulation and serves the REST API + WebSocket frame stream
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/unklstewy/shipcommand/internal/api"
	"github.com/unklstewy/shipcommand/internal/auth"
	"github.com/unklstewy/shipcommand/internal/logging"
	"github.com/unklstewy/shipcommand/internal/sim"
	"github.com/unklstewy/shipcommand/pkg/config"
)

var (
	configPath = flag.String("config", "configs/config.json", "Path to configuration file")
	port       = flag.String("port", "", "HTTP server port (overrides config)")
	hashPass   = flag.String("hash-password", "", "Print the bcrypt hash of a password for the operators list and exit")
)

func main() {
	flag.Parse()

	if *hashPass != "" {
		hash, err := auth.NewService(auth.Config{}).HashPassword(*hashPass)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		fmt.Println(hash)
		return
	}

	log.Println("🚀 Starting Ship Command server...")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.NewLogger()

	world, ids, err := sim.FromConfig(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create world: %v", err)
	}
	log.Printf("⚓ %d vessels at sea", len(ids))

	if len(cfg.Auth.Operators) == 0 {
		log.Println("⚠️  No operators configured: controls and pause are unavailable")
	}
	authSvc := auth.FromConfig(cfg.Auth)

	srv := api.NewServer(world, authSvc, logger, api.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AccessLog:      true,
	})

	ctx, stop := context.WithCancel(context.Background())
	simDone := make(chan struct{})
	go func() {
		defer close(simDone)
		if err := world.Run(ctx); err != nil {
			logger.Error(ctx, "simulation stopped", err)
		}
	}()

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("📡 Server listening on http://%s", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("👋 Shutting down server...")

	// Stopping the world closes the frame streams so websocket handlers return
	stop()
	<-simDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped")
}
