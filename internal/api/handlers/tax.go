package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// TaxHandler handles HTTP requests for the annual tax simulation.
type TaxHandler struct {
	taxService *service.TaxService
}

// NewTaxHandler creates a new TaxHandler with the provided service dependency.
func NewTaxHandler(taxService *service.TaxService) *TaxHandler {
	return &TaxHandler{
		taxService: taxService,
	}
}

// TaxReport handles GET requests for the month-by-month tax simulation.
// Defaults to the current year when the year parameter is absent.
//
// Endpoint: GET /api/portfolio/tax?year=2024
// Response: 200 OK with AnnualTaxReport
// Error: 400 Bad Request if the year is malformed or implausible
// Error: 422 Unprocessable Entity if the ledger contains a zero-dated transaction
// Error: 500 Internal Server Error if computation fails
func (h *TaxHandler) TaxReport(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year", time.Now().UTC().Year())
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid year parameter", r.URL.Query().Get("year"))
		return
	}

	report, err := h.taxService.GetTaxReport(year)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidYear):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidYear.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInvalidTransactionDate):
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrInvalidTransactionDate.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to compute tax report", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}
