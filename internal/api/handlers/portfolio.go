package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// PortfolioHandler handles HTTP requests for portfolio aggregation
// endpoints: performance, profit analysis, history and comparisons.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Performance handles GET requests for the current position summary.
//
// Endpoint: GET /api/portfolio/performance
// Response: 200 OK with array of AssetPerformance
// Error: 500 Internal Server Error if computation fails
func (h *PortfolioHandler) Performance(w http.ResponseWriter, _ *http.Request) {
	performance, err := h.portfolioService.GetPerformance()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute performance", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, performance)
}

// Profit handles GET requests for the lifetime profit decomposition.
//
// Endpoint: GET /api/portfolio/profit
// Response: 200 OK with array of ProfitAnalysisData
// Error: 500 Internal Server Error if computation fails
func (h *PortfolioHandler) Profit(w http.ResponseWriter, _ *http.Request) {
	analysis, err := h.portfolioService.GetProfitAnalysis()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute profit analysis", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, analysis)
}

// Metrics handles GET requests for aggregate profit metrics.
//
// Endpoint: GET /api/portfolio/metrics
// Response: 200 OK with ProfitMetrics
// Error: 500 Internal Server Error if computation fails
func (h *PortfolioHandler) Metrics(w http.ResponseWriter, _ *http.Request) {
	metrics, err := h.portfolioService.GetProfitMetrics()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute metrics", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, metrics)
}

// History handles GET requests for the daily portfolio value series.
//
// Endpoint: GET /api/portfolio/history
// Response: 200 OK with array of PortfolioHistoryPoint
// Error: 500 Internal Server Error if computation fails
func (h *PortfolioHandler) History(w http.ResponseWriter, _ *http.Request) {
	history, err := h.portfolioService.GetHistory()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHistory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, history)
}

// AssetHistory handles GET requests for one asset's daily value series.
//
// Endpoint: GET /api/portfolio/history/{symbol}
// Response: 200 OK with array of PortfolioHistoryPoint
// Error: 404 Not Found if the asset never appears in the ledger
// Error: 500 Internal Server Error if computation fails
func (h *PortfolioHandler) AssetHistory(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))

	history, err := h.portfolioService.GetAssetHistory(symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, "unknown asset", symbol)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHistory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, history)
}

// Comparison handles GET requests for the cross-asset comparison series.
// The mode query parameter selects the baseline: "normalized" (default)
// compares each asset to its first price in range, "costbasis" compares
// to the user's own average entry price.
//
// Endpoint: GET /api/portfolio/comparison?mode=normalized&range=90
// Response: 200 OK with array of ComparisonPoint
// Error: 400 Bad Request if the range or mode parameter is malformed
// Error: 500 Internal Server Error if computation fails
func (h *PortfolioHandler) Comparison(w http.ResponseWriter, r *http.Request) {
	rangeDays, err := queryInt(r, "range", 0)
	if err != nil || rangeDays < 0 {
		response.RespondError(w, http.StatusBadRequest, "invalid range parameter", r.URL.Query().Get("range"))
		return
	}

	mode := r.URL.Query().Get("mode")
	var points interface{}
	switch mode {
	case "", "normalized":
		points, err = h.portfolioService.GetNormalizedComparison(rangeDays)
	case "costbasis":
		points, err = h.portfolioService.GetCostBasisComparison(rangeDays)
	default:
		response.RespondError(w, http.StatusBadRequest, "invalid mode parameter", mode)
		return
	}
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute comparison", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, points)
}
