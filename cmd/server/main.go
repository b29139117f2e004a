package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/api"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/config"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/database"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/jobs"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/pricing"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	allocationRepo := repository.NewAllocationRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	settingRepo, err := repository.NewSettingRepository(db, cfg.Insight.EncryptionKey)
	if err != nil {
		log.Fatalf("Failed to create setting repository: %v", err)
	}

	// Market data client
	pricingClient := pricing.NewClient(cfg.Pricing.BaseURL)

	// Create services
	systemService := service.NewSystemService(db)
	transactionService := service.NewTransactionService(transactionRepo)
	portfolioService := service.NewPortfolioService(transactionService, priceRepo)
	taxService := service.NewTaxService(transactionService)
	rebalanceService := service.NewRebalanceService(allocationRepo, portfolioService, priceRepo)
	alertService := service.NewAlertService(alertRepo, portfolioService, priceRepo)
	priceService := service.NewPriceService(pricingClient, priceRepo, transactionRepo)
	insightService := service.NewInsightService(settingRepo, portfolioService, cfg.Insight.Model)

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Transaction: transactionService,
		Portfolio:   portfolioService,
		Tax:         taxService,
		Rebalance:   rebalanceService,
		Alert:       alertService,
		Insight:     insightService,
		Price:       priceService,
	}, cfg)

	// Start the background refresh scheduler
	scheduler := jobs.NewScheduler(priceService, alertService)
	if err := scheduler.Start(cfg.Jobs.PriceRefreshCron); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
