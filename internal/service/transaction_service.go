package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/repository"
)

// csvHeaders is the expected header row for ledger imports.
var csvHeaders = []string{"date", "type", "asset", "quantity", "unit_price"}

// TransactionService handles ledger-related business logic operations.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
	}
}

// GetTransactions retrieves the full ledger in ascending date order.
func (s *TransactionService) GetTransactions() ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactions()
}

// GetTransaction retrieves a single transaction by its ID.
// Returns ErrTransactionNotFound when the ID does not exist.
func (s *TransactionService) GetTransaction(transactionID string) (model.Transaction, error) {
	transaction, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		return model.Transaction{}, err
	}
	if transaction.ID == "" {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	return transaction, nil
}

// GetAssets returns the distinct asset symbols present in the ledger.
func (s *TransactionService) GetAssets() ([]string, error) {
	return s.transactionRepo.GetAssets()
}

// CreateTransaction records a new buy or sell in the ledger.
func (s *TransactionService) CreateTransaction(req request.CreateTransactionRequest) (model.Transaction, error) {
	transactionDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return model.Transaction{}, err
	}

	transaction := model.Transaction{
		Date:      transactionDate,
		Type:      req.Type,
		Asset:     strings.ToUpper(strings.TrimSpace(req.Asset)),
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	}

	created, err := s.transactionRepo.CreateTransaction(transaction)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	return created, nil
}

// UpdateTransaction applies the non-nil fields of the request to an
// existing transaction. Returns ErrTransactionNotFound when the ID does
// not exist.
func (s *TransactionService) UpdateTransaction(transactionID string, req request.UpdateTransactionRequest) (model.Transaction, error) {
	transaction, err := s.GetTransaction(transactionID)
	if err != nil {
		return model.Transaction{}, err
	}

	if req.Date != nil {
		transaction.Date, err = time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return model.Transaction{}, err
		}
	}
	if req.Type != nil {
		transaction.Type = *req.Type
	}
	if req.Asset != nil {
		transaction.Asset = strings.ToUpper(strings.TrimSpace(*req.Asset))
	}
	if req.Quantity != nil {
		transaction.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		transaction.UnitPrice = *req.UnitPrice
	}

	affected, err := s.transactionRepo.UpdateTransaction(transaction)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to update transaction: %w", err)
	}
	if affected == 0 {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}

	return transaction, nil
}

// DeleteTransaction removes a transaction from the ledger.
// Returns ErrTransactionNotFound when the ID does not exist.
func (s *TransactionService) DeleteTransaction(transactionID string) error {
	affected, err := s.transactionRepo.DeleteTransaction(transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// ImportCSV reads a ledger export and inserts every row as a transaction.
// The expected header is: date,type,asset,quantity,unit_price. The import
// is all-or-nothing up to the first bad row; rows already inserted before
// a failure remain.
//
// Returns the number of imported rows.
func (s *TransactionService) ImportCSV(reader io.Reader) (int, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidCSVHeaders, err)
	}
	if !matchesHeaders(header) {
		return 0, fmt.Errorf("%w: got %v, want %v", apperrors.ErrInvalidCSVHeaders, header, csvHeaders)
	}

	imported := 0
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("failed to read CSV row %d: %w", imported+2, err)
		}

		quantity, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return imported, fmt.Errorf("invalid quantity on row %d: %w", imported+2, err)
		}
		unitPrice, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			return imported, fmt.Errorf("invalid unit_price on row %d: %w", imported+2, err)
		}

		_, err = s.CreateTransaction(request.CreateTransactionRequest{
			Date:      record[0],
			Type:      strings.ToLower(strings.TrimSpace(record[1])),
			Asset:     record[2],
			Quantity:  quantity,
			UnitPrice: unitPrice,
		})
		if err != nil {
			return imported, fmt.Errorf("failed to import row %d: %w", imported+2, err)
		}
		imported++
	}

	return imported, nil
}

func matchesHeaders(header []string) bool {
	if len(header) != len(csvHeaders) {
		return false
	}
	for i, want := range csvHeaders {
		if strings.ToLower(strings.TrimSpace(header[i])) != want {
			return false
		}
	}
	return true
}
