package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/config"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// Services bundles everything the router needs so the constructor does
// not take a dozen positional arguments.
type Services struct {
	System      *service.SystemService
	Transaction *service.TransactionService
	Portfolio   *service.PortfolioService
	Tax         *service.TaxService
	Rebalance   *service.RebalanceService
	Alert       *service.AlertService
	Insight     *service.InsightService
	Price       *service.PriceService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/transactions", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(services.Transaction)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Post("/import", transactionHandler.ImportTransactions)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(services.Portfolio)
			r.Get("/performance", portfolioHandler.Performance)
			r.Get("/profit", portfolioHandler.Profit)
			r.Get("/metrics", portfolioHandler.Metrics)
			r.Get("/history", portfolioHandler.History)
			r.Get("/history/{symbol}", portfolioHandler.AssetHistory)
			r.Get("/comparison", portfolioHandler.Comparison)

			taxHandler := handlers.NewTaxHandler(services.Tax)
			r.Get("/tax", taxHandler.TaxReport)

			rebalanceHandler := handlers.NewRebalanceHandler(services.Rebalance)
			r.Get("/allocation", rebalanceHandler.GetAllocation)
			r.Put("/allocation", rebalanceHandler.SaveAllocation)
			r.Get("/rebalance", rebalanceHandler.Rebalance)
			r.Post("/rebalance/simulate", rebalanceHandler.Simulate)
		})

		r.Route("/alerts", func(r chi.Router) {
			alertHandler := handlers.NewAlertHandler(services.Alert)
			r.Get("/", alertHandler.AllAlerts)
			r.Post("/", alertHandler.CreateAlert)
			r.Post("/evaluate", alertHandler.Evaluate)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Put("/enabled", alertHandler.SetEnabled)
				r.Delete("/", alertHandler.DeleteAlert)
			})
		})

		r.Route("/insight", func(r chi.Router) {
			insightHandler := handlers.NewInsightHandler(services.Insight)
			r.Post("/", insightHandler.Ask)
			r.Get("/key", insightHandler.KeyStatus)
			r.Put("/key", insightHandler.SaveKey)
		})

		r.Route("/prices", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(services.Price)
			r.Post("/refresh", priceHandler.Refresh)
			r.Post("/backfill", priceHandler.Backfill)
		})
	})

	return r
}
