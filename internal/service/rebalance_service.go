package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/calc"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/repository"
)

// RebalanceService manages the target allocation plan and turns it into
// concrete buy/sell suggestions and strategy simulations.
type RebalanceService struct {
	allocationRepo   *repository.AllocationRepository
	portfolioService *PortfolioService
	priceRepo        *repository.PriceRepository
}

// NewRebalanceService creates a new RebalanceService with the provided dependencies.
func NewRebalanceService(
	allocationRepo *repository.AllocationRepository,
	portfolioService *PortfolioService,
	priceRepo *repository.PriceRepository,
) *RebalanceService {
	return &RebalanceService{
		allocationRepo:   allocationRepo,
		portfolioService: portfolioService,
		priceRepo:        priceRepo,
	}
}

// GetAllocationPlan returns the stored plan.
// Returns ErrAllocationNotFound when no plan has been saved yet.
func (s *RebalanceService) GetAllocationPlan() ([]model.AllocationTarget, error) {
	targets, err := s.allocationRepo.GetAllocationTargets()
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, apperrors.ErrAllocationNotFound
	}
	return targets, nil
}

// SaveAllocationPlan replaces the stored plan. Unanchored target
// percentages must sum to 100 within tolerance; anchored entries carry no
// percentage weight and are stored with zero.
func (s *RebalanceService) SaveAllocationPlan(req request.SaveAllocationPlanRequest) ([]model.AllocationTarget, error) {
	if len(req.Targets) == 0 {
		return nil, fmt.Errorf("%w: plan is empty", apperrors.ErrInvalidAllocation)
	}

	targets := make([]model.AllocationTarget, 0, len(req.Targets))
	sum := 0.0
	for _, entry := range req.Targets {
		symbol := strings.ToUpper(strings.TrimSpace(entry.Symbol))
		if symbol == "" {
			return nil, fmt.Errorf("%w: empty symbol", apperrors.ErrInvalidAllocation)
		}
		if entry.TargetPct < 0 {
			return nil, fmt.Errorf("%w: %s has negative percentage", apperrors.ErrInvalidAllocation, symbol)
		}
		target := model.AllocationTarget{
			Symbol:    symbol,
			TargetPct: entry.TargetPct,
			Anchored:  entry.Anchored,
			Locked:    entry.Locked,
		}
		if target.Anchored {
			target.TargetPct = 0
		} else {
			sum += target.TargetPct
		}
		targets = append(targets, target)
	}

	if math.Abs(sum-100) > calc.AllocationSumTolerancePct {
		return nil, fmt.Errorf("%w: percentages sum to %.2f", apperrors.ErrInvalidAllocation, sum)
	}

	existing, err := s.allocationRepo.GetAllocationTargets()
	if err != nil {
		return nil, err
	}
	keep := make(map[string]bool, len(targets))
	for _, target := range targets {
		keep[target.Symbol] = true
	}
	for _, target := range existing {
		if !keep[target.Symbol] {
			if _, err := s.allocationRepo.DeleteAllocationTarget(target.Symbol); err != nil {
				return nil, err
			}
		}
	}

	for _, target := range targets {
		if err := s.allocationRepo.SaveAllocationTarget(target); err != nil {
			return nil, err
		}
	}

	return targets, nil
}

// GetRebalanceSuggestions computes the orders that bring the portfolio to
// its stored plan, optionally with fresh capital (positive) or a
// withdrawal (negative).
func (s *RebalanceService) GetRebalanceSuggestions(capitalChange float64) ([]model.RebalanceSuggestion, error) {
	plan, err := s.GetAllocationPlan()
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

	targets := normalizeTargets(plan)
	anchored := make(map[string]bool)
	for _, entry := range plan {
		if entry.Anchored {
			anchored[entry.Symbol] = true
		}
	}

	return calc.ComputeRebalanceSuggestions(performance, targets, quotes, capitalChange, anchored), nil
}

// SimulateStrategy replays a hypothetical allocation against the actual
// invested-capital schedule and returns the counterfactual value series.
func (s *RebalanceService) SimulateStrategy(targets map[string]float64) ([]model.SimulatedHistoryPoint, error) {
	for symbol, pct := range targets {
		if pct < 0 {
			return nil, fmt.Errorf("%w: %s has negative percentage", apperrors.ErrInvalidAllocation, symbol)
		}
	}

	history, err := s.portfolioService.GetHistory()
	if err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(targets))
	for symbol := range targets {
		symbols = append(symbols, symbol)
	}
	historical, err := s.priceRepo.GetHistoricalPrices(symbols)
	if err != nil {
		return nil, err
	}

	return calc.SimulateAllocationHistory(history, targets, historical), nil
}

// normalizeTargets scales the unlocked percentages so the plan sums to
// exactly 100, leaving locked entries at their stated value. Anchored
// entries never contribute a target.
func normalizeTargets(plan []model.AllocationTarget) map[string]float64 {
	lockedSum := 0.0
	unlockedSum := 0.0
	for _, entry := range plan {
		if entry.Anchored {
			continue
		}
		if entry.Locked {
			lockedSum += entry.TargetPct
		} else {
			unlockedSum += entry.TargetPct
		}
	}

	remaining := 100 - lockedSum
	scale := 1.0
	if unlockedSum > 0 && remaining > 0 {
		scale = remaining / unlockedSum
	}

	targets := make(map[string]float64)
	for _, entry := range plan {
		if entry.Anchored {
			continue
		}
		if entry.Locked {
			targets[entry.Symbol] = entry.TargetPct
		} else {
			targets[entry.Symbol] = entry.TargetPct * scale
		}
	}
	return targets
}
