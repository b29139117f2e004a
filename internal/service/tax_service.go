package service

import (
	"fmt"
	"time"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/calc"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// TaxService produces the annual Brazilian capital gains simulation from
// the ledger. The policy (exemption threshold and rate) is fixed at
// construction so tests can exercise alternative regimes.
type TaxService struct {
	transactionService *TransactionService
	policy             calc.TaxPolicy
}

// NewTaxService creates a new TaxService using the default policy:
// R$35,000 monthly exemption and a 15% rate on gains.
func NewTaxService(transactionService *TransactionService) *TaxService {
	return &TaxService{
		transactionService: transactionService,
		policy:             calc.DefaultTaxPolicy,
	}
}

// GetTaxReport computes the month-by-month tax simulation for one year.
// Years before the first Bitcoin block or in the far future are rejected.
func (s *TaxService) GetTaxReport(year int) (model.AnnualTaxReport, error) {
	if year < 2009 || year > time.Now().UTC().Year()+1 {
		return model.AnnualTaxReport{}, fmt.Errorf("%w: %d", apperrors.ErrInvalidYear, year)
	}

	transactions, err := s.transactionService.GetTransactions()
	if err != nil {
		return model.AnnualTaxReport{}, err
	}

	return calc.ComputeTaxReport(transactions, year, s.policy)
}
