package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/calc"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/repository"
)

// AlertService manages threshold alerts on prices and portfolio-level
// aggregates. Alerts fire once per arming: evaluation disables a
// triggered alert until the user re-enables it.
type AlertService struct {
	alertRepo        *repository.AlertRepository
	portfolioService *PortfolioService
	priceRepo        *repository.PriceRepository
}

// NewAlertService creates a new AlertService with the provided dependencies.
func NewAlertService(
	alertRepo *repository.AlertRepository,
	portfolioService *PortfolioService,
	priceRepo *repository.PriceRepository,
) *AlertService {
	return &AlertService{
		alertRepo:        alertRepo,
		portfolioService: portfolioService,
		priceRepo:        priceRepo,
	}
}

// GetAlerts returns all alerts.
func (s *AlertService) GetAlerts() ([]model.Alert, error) {
	return s.alertRepo.GetAlerts()
}

// CreateAlert validates and stores a new alert.
func (s *AlertService) CreateAlert(req request.CreateAlertRequest) (model.Alert, error) {
	alert := model.Alert{
		Ref: model.AssetRef{
			Kind:   model.AssetRefKind(req.RefKind),
			Symbol: strings.ToUpper(strings.TrimSpace(req.RefSymbol)),
		},
		Direction: req.Direction,
		Threshold: req.Threshold,
	}

	if !alert.Ref.Valid() {
		return model.Alert{}, fmt.Errorf("invalid alert reference: kind %q symbol %q", req.RefKind, req.RefSymbol)
	}
	if alert.Direction != model.AlertAbove && alert.Direction != model.AlertBelow {
		return model.Alert{}, fmt.Errorf("invalid alert direction: %q", req.Direction)
	}

	return s.alertRepo.CreateAlert(alert)
}

// SetEnabled re-arms or disables an alert.
// Returns ErrAlertNotFound when the ID does not exist.
func (s *AlertService) SetEnabled(alertID string, enabled bool) error {
	affected, err := s.alertRepo.SetEnabled(alertID, enabled)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrAlertNotFound
	}
	return nil
}

// DeleteAlert removes an alert.
// Returns ErrAlertNotFound when the ID does not exist.
func (s *AlertService) DeleteAlert(alertID string) error {
	affected, err := s.alertRepo.DeleteAlert(alertID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrAlertNotFound
	}
	return nil
}

// EvaluateAlerts resolves every enabled alert's reference against current
// data and marks those whose threshold is crossed as triggered.
//
// Returns the alerts that fired during this evaluation.
func (s *AlertService) EvaluateAlerts() ([]model.Alert, error) {
	alerts, err := s.alertRepo.GetAlerts()
	if err != nil {
		return nil, err
	}

	performance, err := s.portfolioService.GetPerformance()
	if err != nil {
		return nil, err
	}
	quotes, err := s.priceRepo.GetCachedQuotes()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	fired := []model.Alert{}
	for _, alert := range alerts {
		if !alert.Enabled {
			continue
		}

		value := calc.ResolveAssetRef(alert.Ref, performance, quotes)
		crossed := (alert.Direction == model.AlertAbove && value > alert.Threshold) ||
			(alert.Direction == model.AlertBelow && value < alert.Threshold)
		if !crossed {
			continue
		}

		if err := s.alertRepo.MarkTriggered(alert.ID, now); err != nil {
			return fired, err
		}
		log.Printf("alert %s fired: %s %s %s %.2f (value %.2f)",
			alert.ID, alert.Ref.Kind, alert.Ref.Symbol, alert.Direction, alert.Threshold, value)

		alert.Enabled = false
		alert.TriggeredAt = &now
		fired = append(fired, alert)
	}

	return fired, nil
}
