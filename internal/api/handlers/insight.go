package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// InsightHandler handles HTTP requests for AI-assisted portfolio
// questions and the API key lifecycle.
type InsightHandler struct {
	insightService *service.InsightService
}

// NewInsightHandler creates a new InsightHandler with the provided service dependency.
func NewInsightHandler(insightService *service.InsightService) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
	}
}

// InsightResponse wraps the model's answer.
type InsightResponse struct {
	Answer string `json:"answer"`
}

// Ask handles POST requests to answer a question about the portfolio.
//
// Endpoint: POST /api/insight
// Request Body: InsightRequest (question)
// Response: 200 OK with InsightResponse
// Error: 400 Bad Request if the question is empty
// Error: 412 Precondition Failed if no API key has been stored
// Error: 502 Bad Gateway if the model request fails
func (h *InsightHandler) Ask(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.InsightRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		response.RespondError(w, http.StatusBadRequest, "question is required", "")
		return
	}

	answer, err := h.insightService.Ask(r.Context(), req.Question)
	if err != nil {
		if errors.Is(err, apperrors.ErrMissingAPIKey) {
			response.RespondError(w, http.StatusPreconditionFailed, apperrors.ErrMissingAPIKey.Error(), "")
			return
		}
		response.RespondError(w, http.StatusBadGateway, "insight request failed", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, InsightResponse{Answer: answer})
}

// KeyStatusResponse reports whether an API key is stored.
type KeyStatusResponse struct {
	Configured bool `json:"configured"`
}

// KeyStatus handles GET requests for the API key status. The key itself
// is never returned.
//
// Endpoint: GET /api/insight/key
// Response: 200 OK with KeyStatusResponse
func (h *InsightHandler) KeyStatus(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, KeyStatusResponse{
		Configured: h.insightService.HasAPIKey(),
	})
}

// SaveKey handles PUT requests to store the Gemini API key.
//
// Endpoint: PUT /api/insight/key
// Request Body: SaveInsightKeyRequest (apiKey)
// Response: 204 No Content
// Error: 400 Bad Request if the key is empty
// Error: 500 Internal Server Error if encryption or storage fails
func (h *InsightHandler) SaveKey(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SaveInsightKeyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.insightService.SaveAPIKey(req.APIKey); err != nil {
		if errors.Is(err, apperrors.ErrMissingAPIKey) {
			response.RespondError(w, http.StatusBadRequest, "apiKey is required", "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to store API key", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
