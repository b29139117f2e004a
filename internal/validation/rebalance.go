package validation

import (
	"strings"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/api/request"
)

// ValidateSaveAllocationPlan validates an allocation plan request at the
// transport level. Percentage-sum rules are enforced by the rebalance
// service, which owns the tolerance.
func ValidateSaveAllocationPlan(req request.SaveAllocationPlanRequest) error {
	errors := make(map[string]string)

	if len(req.Targets) == 0 {
		errors["targets"] = "at least one target is required"
	}

	for _, target := range req.Targets {
		if strings.TrimSpace(target.Symbol) == "" {
			errors["symbol"] = "symbol is required"
		}
		if target.TargetPct < 0 {
			errors["targetPct"] = "targetPct must not be negative"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateSimulateAllocation validates a strategy simulation request.
func ValidateSimulateAllocation(req request.SimulateAllocationRequest) error {
	errors := make(map[string]string)

	if len(req.Targets) == 0 {
		errors["targets"] = "at least one target is required"
	}
	for symbol, pct := range req.Targets {
		if strings.TrimSpace(symbol) == "" {
			errors["targets"] = "symbol is required"
		}
		if pct < 0 {
			errors["targets"] = "percentages must not be negative"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
