package service

import (
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/calc"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/repository"
)

// PortfolioService handles portfolio-level business logic operations.
// It loads the ledger and price data from their repositories and feeds
// them to the calculation engine; all aggregation semantics live in calc.
type PortfolioService struct {
	transactionService *TransactionService
	priceRepo          *repository.PriceRepository
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	transactionService *TransactionService,
	priceRepo *repository.PriceRepository,
) *PortfolioService {
	return &PortfolioService{
		transactionService: transactionService,
		priceRepo:          priceRepo,
	}
}

// GetPerformance returns the current per-asset position summary: cost
// basis, market value and variation for every asset still held.
func (s *PortfolioService) GetPerformance() ([]model.AssetPerformance, error) {
	transactions, quotes, err := s.loadLedgerAndQuotes()
	if err != nil {
		return nil, err
	}
	return calc.ComputePerformance(transactions, quotes), nil
}

// GetProfitAnalysis returns the lifetime profit decomposition per asset,
// including fully liquidated ones.
func (s *PortfolioService) GetProfitAnalysis() ([]model.ProfitAnalysisData, error) {
	transactions, quotes, err := s.loadLedgerAndQuotes()
	if err != nil {
		return nil, err
	}
	return calc.ComputeProfitAnalysis(transactions, quotes), nil
}

// GetProfitMetrics returns the aggregate win rate and best/worst assets.
func (s *PortfolioService) GetProfitMetrics() (model.ProfitMetrics, error) {
	analysis, err := s.GetProfitAnalysis()
	if err != nil {
		return model.ProfitMetrics{}, err
	}
	return calc.ComputeProfitMetrics(analysis), nil
}

// GetHistory reconstructs the daily invested/market value series for the
// whole portfolio from the first transaction through today.
func (s *PortfolioService) GetHistory() ([]model.PortfolioHistoryPoint, error) {
	transactions, err := s.transactionService.GetTransactions()
	if err != nil {
		return nil, err
	}

	assets := assetsOf(transactions)
	historical, err := s.priceRepo.GetHistoricalPrices(assets)
	if err != nil {
		return nil, err
	}
	quotes, err := s.priceRepo.GetCachedQuotes()
	if err != nil {
		return nil, err
	}

	return calc.ComputeHistory(transactions, historical, quotes), nil
}

// GetAssetHistory reconstructs the daily series for a single asset.
// Returns ErrTransactionNotFound when the asset never appears in the ledger.
func (s *PortfolioService) GetAssetHistory(symbol string) ([]model.PortfolioHistoryPoint, error) {
	transactions, err := s.transactionService.GetTransactions()
	if err != nil {
		return nil, err
	}

	held := false
	for _, t := range transactions {
		if t.Asset == symbol {
			held = true
			break
		}
	}
	if !held {
		return nil, apperrors.ErrTransactionNotFound
	}

	historical, err := s.priceRepo.GetHistoricalPrices([]string{symbol})
	if err != nil {
		return nil, err
	}
	quotes, err := s.priceRepo.GetCachedQuotes()
	if err != nil {
		return nil, err
	}

	return calc.ComputeAssetHistory(transactions, symbol, historical, quotes), nil
}

// GetNormalizedComparison returns the cross-asset percent-change series
// over the trailing rangeDays window (0 means the full history).
func (s *PortfolioService) GetNormalizedComparison(rangeDays int) ([]model.ComparisonPoint, error) {
	assets, historical, err := s.loadAssetsAndHistory()
	if err != nil {
		return nil, err
	}
	return calc.ComputeNormalizedComparison(assets, historical, rangeDays), nil
}

// GetCostBasisComparison returns the entry-point deviation series: each
// asset's price relative to its own average buy price.
func (s *PortfolioService) GetCostBasisComparison(rangeDays int) ([]model.ComparisonPoint, error) {
	assets, historical, err := s.loadAssetsAndHistory()
	if err != nil {
		return nil, err
	}
	analysis, err := s.GetProfitAnalysis()
	if err != nil {
		return nil, err
	}
	return calc.ComputeCostBasisComparison(assets, analysis, historical, rangeDays), nil
}

func (s *PortfolioService) loadLedgerAndQuotes() ([]model.Transaction, model.CurrentPriceMap, error) {
	transactions, err := s.transactionService.GetTransactions()
	if err != nil {
		return nil, nil, err
	}
	quotes, err := s.priceRepo.GetCachedQuotes()
	if err != nil {
		return nil, nil, err
	}
	return transactions, quotes, nil
}

func (s *PortfolioService) loadAssetsAndHistory() ([]string, model.HistoricalPriceMap, error) {
	assets, err := s.transactionService.GetAssets()
	if err != nil {
		return nil, nil, err
	}
	historical, err := s.priceRepo.GetHistoricalPrices(assets)
	if err != nil {
		return nil, nil, err
	}
	return assets, historical, nil
}

// assetsOf collects the distinct symbols in a transaction slice, in order
// of first appearance.
func assetsOf(transactions []model.Transaction) []string {
	seen := make(map[string]bool)
	assets := []string{}
	for _, t := range transactions {
		if !seen[t.Asset] {
			seen[t.Asset] = true
			assets = append(assets, t.Asset)
		}
	}
	return assets
}
