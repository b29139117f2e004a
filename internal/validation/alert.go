package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// ValidAlertDirection contains the allowed alert direction values.
var ValidAlertDirection = map[string]bool{
	model.AlertAbove: true, model.AlertBelow: true,
}

// ValidateCreateAlert validates an alert creation request.
//
// Required fields:
//   - refKind: Must be one of: symbol, portfolio_total, unrealized_profit_total
//   - refSymbol: Required when refKind is symbol
//   - direction: Must be one of: above, below
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateAlert(req request.CreateAlertRequest) error {
	errors := make(map[string]string)

	ref := model.AssetRef{
		Kind:   model.AssetRefKind(req.RefKind),
		Symbol: strings.TrimSpace(req.RefSymbol),
	}
	if !ref.Valid() {
		errors["refKind"] = fmt.Sprintf("invalid reference: kind %q symbol %q", req.RefKind, req.RefSymbol)
	}

	if !ValidAlertDirection[req.Direction] {
		errors["direction"] = fmt.Sprintf("invalid direction: %s", req.Direction)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
