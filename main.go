package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/bike-reservation/config"
	"github.com/yeremiapane/bike-reservation/database"
	"github.com/yeremiapane/bike-reservation/router"
	"github.com/yeremiapane/bike-reservation/services"
	"github.com/yeremiapane/bike-reservation/utils"
)

func init() {
	utils.InitLogger()

	// Load .env file di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Printf("Warning: .env file not found or error loading: %v", err)
	} else {
		utils.InfoLogger.Println("Successfully loaded .env file")
	}
}

func main() {
	if err := run(); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	utils.SetLogLevel(cfg.Server.LogLevel)

	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			utils.ErrorLogger.Printf("Error closing database: %v", err)
		}
		utils.InfoLogger.Println("Database connection closed")
	}()

	if err := database.Migrate(db.DB, cfg.Database.Schema); err != nil {
		return err
	}

	nsClient := services.NewNSClient(&cfg.NS)
	if err := nsClient.ValidateConfig(); err != nil {
		utils.InfoLogger.Warnf("NS client: %v; /ns_departures/ will fail upstream", err)
	}

	r := router.SetupRouter(router.Dependencies{
		Config:   cfg,
		Store:    services.NewStore(db.DB, cfg.Database.PoolSize, cfg.Database.AcquireTimeout),
		NSClient: nsClient,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		utils.InfoLogger.Printf("Listening on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		utils.InfoLogger.Println("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	utils.InfoLogger.Println("Server stopped")
	return nil
}
