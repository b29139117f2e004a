package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/service"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/validation"
)

// AlertHandler handles HTTP requests for threshold alerts.
type AlertHandler struct {
	alertService *service.AlertService
}

// NewAlertHandler creates a new AlertHandler with the provided service dependency.
func NewAlertHandler(alertService *service.AlertService) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
	}
}

// AllAlerts handles GET requests to list all alerts.
//
// Endpoint: GET /api/alerts
// Response: 200 OK with array of Alert
// Error: 500 Internal Server Error if retrieval fails
func (h *AlertHandler) AllAlerts(w http.ResponseWriter, _ *http.Request) {
	alerts, err := h.alertService.GetAlerts()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve alerts", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, alerts)
}

// CreateAlert handles POST requests to create a new alert.
//
// Endpoint: POST /api/alerts
// Request Body: CreateAlertRequest (refKind, refSymbol, direction, threshold)
// Response: 201 Created with Alert
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if creation fails
func (h *AlertHandler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAlertRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAlert(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	alert, err := h.alertService.CreateAlert(req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create alert", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, alert)
}

// SetEnabled handles PUT requests to re-arm or disable an alert.
//
// Endpoint: PUT /api/alerts/{uuid}/enabled
// Request Body: SetAlertEnabledRequest
// Response: 204 No Content
// Error: 400 Bad Request if the alert ID is invalid (validated by middleware)
// Error: 404 Not Found if the alert does not exist
// Error: 500 Internal Server Error if the update fails
func (h *AlertHandler) SetEnabled(w http.ResponseWriter, r *http.Request) {
	alertID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.SetAlertEnabledRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.alertService.SetEnabled(alertID, req.Enabled); err != nil {
		if errors.Is(err, apperrors.ErrAlertNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAlertNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update alert", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// DeleteAlert handles DELETE requests to remove an alert.
//
// Endpoint: DELETE /api/alerts/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if the alert ID is invalid (validated by middleware)
// Error: 404 Not Found if the alert does not exist
// Error: 500 Internal Server Error if deletion fails
func (h *AlertHandler) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	alertID := chi.URLParam(r, "uuid")

	if err := h.alertService.DeleteAlert(alertID); err != nil {
		if errors.Is(err, apperrors.ErrAlertNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAlertNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete alert", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Evaluate handles POST requests to run an alert evaluation cycle now,
// in addition to the scheduled evaluations.
//
// Endpoint: POST /api/alerts/evaluate
// Response: 200 OK with the array of alerts that fired
// Error: 500 Internal Server Error if evaluation fails
func (h *AlertHandler) Evaluate(w http.ResponseWriter, _ *http.Request) {
	fired, err := h.alertService.EvaluateAlerts()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to evaluate alerts", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, fired)
}
