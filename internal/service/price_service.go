package service

import (
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/pricing"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/repository"
)

// backfillDays is how far back historical closes are fetched when an
// asset has no stored price data yet.
const backfillDays = 365

// maxConcurrentFetches bounds parallel market chart requests so the
// provider's rate limit is not tripped on large portfolios.
const maxConcurrentFetches = 4

// PriceService keeps the quote cache and the historical price table in
// sync with the market data provider.
type PriceService struct {
	client          *pricing.Client
	priceRepo       *repository.PriceRepository
	transactionRepo *repository.TransactionRepository
}

// NewPriceService creates a new PriceService with the provided dependencies.
func NewPriceService(
	client *pricing.Client,
	priceRepo *repository.PriceRepository,
	transactionRepo *repository.TransactionRepository,
) *PriceService {
	return &PriceService{
		client:          client,
		priceRepo:       priceRepo,
		transactionRepo: transactionRepo,
	}
}

// RefreshQuotes fetches live quotes for every asset in the ledger in one
// batch request and upserts them into the quote cache.
//
// Returns the refreshed quote map.
func (s *PriceService) RefreshQuotes() (model.CurrentPriceMap, error) {
	assets, err := s.transactionRepo.GetAssets()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveTransactions, err)
	}
	if len(assets) == 0 {
		return model.CurrentPriceMap{}, nil
	}

	response, err := s.client.QuerySimplePrice(assets)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrievePrices, err)
	}

	quotes := model.CurrentPriceMap{}
	for _, asset := range assets {
		price, change, ok := response.PriceFor(asset)
		if !ok {
			// An unknown symbol stays absent; downstream calculations
			// fall back to cost basis for it.
			log.Printf("no quote returned for %s", asset)
			continue
		}
		quote := model.Quote{Price: price, PercentChange24h: change}
		if err := s.priceRepo.SaveQuote(asset, quote); err != nil {
			return nil, err
		}
		quotes[asset] = quote
	}

	return quotes, nil
}

// BackfillHistory fetches and stores daily closes for every ledger asset,
// querying the provider concurrently. Assets that fail to fetch are
// logged and skipped; the first storage error aborts the backfill.
func (s *PriceService) BackfillHistory() error {
	assets, err := s.transactionRepo.GetAssets()
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveTransactions, err)
	}

	var group errgroup.Group
	group.SetLimit(maxConcurrentFetches)

	for _, asset := range assets {
		group.Go(func() error {
			closes, err := s.client.QueryMarketChart(asset, backfillDays)
			if err != nil {
				log.Printf("failed to fetch history for %s: %v", asset, err)
				return nil
			}
			for _, close := range closes {
				date := close.Date.Format("2006-01-02")
				if err := s.priceRepo.SaveHistoricalPrice(asset, date, close.Price); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return group.Wait()
}
