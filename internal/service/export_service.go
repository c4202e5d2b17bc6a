package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/google/uuid"
)

// ExportURLExpiry is how long an export download link stays valid
const ExportURLExpiry = 15 * time.Minute

var exportHeader = []string{"id", "date", "type", "description", "category", "payment_method", "amount", "notes"}

// ExportService renders transactions to CSV and stores them in object storage
type ExportService struct {
	transactionRepo domain.TransactionRepository
	storage         domain.ObjectStorage
	now             func() time.Time
}

// NewExportService creates a new ExportService. A nil storage disables exports.
func NewExportService(transactionRepo domain.TransactionRepository, storage domain.ObjectStorage) *ExportService {
	return &ExportService{
		transactionRepo: transactionRepo,
		storage:         storage,
		now:             time.Now,
	}
}

// SetClock replaces the time source used for object keys and expiry
func (s *ExportService) SetClock(now func() time.Time) {
	s.now = now
}

// Enabled reports whether object storage is configured
func (s *ExportService) Enabled() bool {
	return s.storage != nil
}

// ExportTransactions uploads every transaction matching filters as CSV and
// returns a temporary download link
func (s *ExportService) ExportTransactions(ctx context.Context, filters *domain.TransactionFilters) (*domain.Export, error) {
	if s.storage == nil {
		return nil, domain.ErrStorageNotConfigured
	}

	transactions, err := s.transactionRepo.ListAll(ctx, filters)
	if err != nil {
		return nil, err
	}

	body, err := renderTransactionsCSV(transactions)
	if err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}

	now := s.now().UTC()
	key, err := s.storage.Upload(ctx, exportObjectKey(now), bytes.NewReader(body), "text/csv", int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	url, err := s.storage.PresignGet(ctx, key, ExportURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign export: %w", err)
	}

	return &domain.Export{
		Key:       key,
		URL:       url,
		Rows:      len(transactions),
		ExpiresAt: now.Add(ExportURLExpiry),
	}, nil
}

// exportObjectKey builds exports/<YYYY-MM-DD>/<uuid>.csv
func exportObjectKey(now time.Time) string {
	return path.Join("exports", now.Format(time.DateOnly), uuid.New().String()+".csv")
}

func renderTransactionsCSV(transactions []*domain.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, t := range transactions {
		record := []string{
			strconv.FormatInt(int64(t.ID), 10),
			t.Date.Format(time.DateOnly),
			string(t.Type),
			t.Description,
			t.Category,
			string(t.PaymentMethod),
			t.Amount.StringFixed(2),
			t.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
