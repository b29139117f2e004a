package handlers

import (
	"net/http"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// PriceHandler handles HTTP requests for market data refreshes.
type PriceHandler struct {
	priceService *service.PriceService
}

// NewPriceHandler creates a new PriceHandler with the provided service dependency.
func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// Refresh handles POST requests to refresh live quotes for every ledger
// asset, outside the scheduled refresh cycle.
//
// Endpoint: POST /api/prices/refresh
// Response: 200 OK with the refreshed quote map
// Error: 502 Bad Gateway if the market data provider fails
func (h *PriceHandler) Refresh(w http.ResponseWriter, _ *http.Request) {
	quotes, err := h.priceService.RefreshQuotes()
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToRefreshPrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, quotes)
}

// Backfill handles POST requests to fetch and store historical daily
// closes for every ledger asset.
//
// Endpoint: POST /api/prices/backfill
// Response: 204 No Content
// Error: 502 Bad Gateway if the market data provider fails
func (h *PriceHandler) Backfill(w http.ResponseWriter, _ *http.Request) {
	if err := h.priceService.BackfillHistory(); err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToRetrievePrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
