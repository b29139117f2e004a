package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/service"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/validation"
)

// RebalanceHandler handles HTTP requests for the allocation plan,
// rebalancing suggestions and strategy simulation.
type RebalanceHandler struct {
	rebalanceService *service.RebalanceService
}

// NewRebalanceHandler creates a new RebalanceHandler with the provided service dependency.
func NewRebalanceHandler(rebalanceService *service.RebalanceService) *RebalanceHandler {
	return &RebalanceHandler{
		rebalanceService: rebalanceService,
	}
}

// GetAllocation handles GET requests for the stored allocation plan.
//
// Endpoint: GET /api/portfolio/allocation
// Response: 200 OK with array of AllocationTarget
// Error: 404 Not Found if no plan has been saved
// Error: 500 Internal Server Error if retrieval fails
func (h *RebalanceHandler) GetAllocation(w http.ResponseWriter, _ *http.Request) {
	plan, err := h.rebalanceService.GetAllocationPlan()
	if err != nil {
		if errors.Is(err, apperrors.ErrAllocationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAllocationNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve allocation plan", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, plan)
}

// SaveAllocation handles PUT requests to replace the allocation plan.
//
// Endpoint: PUT /api/portfolio/allocation
// Request Body: SaveAllocationPlanRequest
// Response: 200 OK with the stored array of AllocationTarget
// Error: 400 Bad Request if validation fails or percentages are out of tolerance
// Error: 500 Internal Server Error if storage fails
func (h *RebalanceHandler) SaveAllocation(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SaveAllocationPlanRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSaveAllocationPlan(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	plan, err := h.rebalanceService.SaveAllocationPlan(req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidAllocation) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidAllocation.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to save allocation plan", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, plan)
}

// Rebalance handles GET requests for rebalancing suggestions. The
// optional capital query parameter injects (positive) or withdraws
// (negative) fiat before computing targets.
//
// Endpoint: GET /api/portfolio/rebalance?capital=1000
// Response: 200 OK with array of RebalanceSuggestion
// Error: 400 Bad Request if the capital parameter is malformed
// Error: 404 Not Found if no allocation plan has been saved
// Error: 500 Internal Server Error if computation fails
func (h *RebalanceHandler) Rebalance(w http.ResponseWriter, r *http.Request) {
	capital, err := queryFloat(r, "capital", 0)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid capital parameter", r.URL.Query().Get("capital"))
		return
	}

	suggestions, err := h.rebalanceService.GetRebalanceSuggestions(capital)
	if err != nil {
		if errors.Is(err, apperrors.ErrAllocationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAllocationNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to compute rebalance suggestions", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, suggestions)
}

// Simulate handles POST requests for the counterfactual strategy replay.
//
// Endpoint: POST /api/portfolio/rebalance/simulate
// Request Body: SimulateAllocationRequest (targets map of symbol to percent)
// Response: 200 OK with array of SimulatedHistoryPoint
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if computation fails
func (h *RebalanceHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SimulateAllocationRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSimulateAllocation(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	simulated, err := h.rebalanceService.SimulateStrategy(req.Targets)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidAllocation) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidAllocation.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to simulate strategy", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, simulated)
}
