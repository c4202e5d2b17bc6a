package service

import (
	"context"
	"strings"
	"time"

	"github.com/fintrack/fintrack-backend/internal/api"
	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/fintrack/fintrack-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	eventPublisher  websocket.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *TransactionService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *TransactionService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// TransactionInput holds the input for creating or replacing a transaction.
// Nil Amount and Date mean the field was absent from the request.
type TransactionInput struct {
	Type          string
	Description   string
	Amount        *decimal.Decimal
	Date          *time.Time
	Category      string
	PaymentMethod string
	Notes         string
}

// ListTransactions returns one page of transactions matching filters
func (s *TransactionService) ListTransactions(ctx context.Context, filters *domain.TransactionFilters, page domain.Pagination) ([]*domain.Transaction, error) {
	return s.transactionRepo.List(ctx, filters, page)
}

// CreateTransaction validates input and stores a new transaction
func (s *TransactionService) CreateTransaction(ctx context.Context, input TransactionInput) (*domain.Transaction, error) {
	data, err := validateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	created, err := s.transactionRepo.Create(ctx, data)
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.TransactionCreated(api.NewTransaction(created)))
	return created, nil
}

// UpdateTransaction replaces every mutable field of a transaction
func (s *TransactionService) UpdateTransaction(ctx context.Context, id int32, input TransactionInput) (*domain.Transaction, error) {
	data, err := validateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	updated, err := s.transactionRepo.Update(ctx, id, data)
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.TransactionUpdated(api.NewTransaction(updated)))
	return updated, nil
}

// DeleteTransaction removes a transaction and returns its ID
func (s *TransactionService) DeleteTransaction(ctx context.Context, id int32) (int32, error) {
	deletedID, err := s.transactionRepo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	s.publishEvent(websocket.TransactionDeleted(deletedID))
	return deletedID, nil
}

func validateTransactionInput(input TransactionInput) (*domain.TransactionData, error) {
	description := strings.TrimSpace(input.Description)
	category := strings.TrimSpace(input.Category)

	if input.Type == "" || description == "" || input.Amount == nil || input.Date == nil || category == "" {
		return nil, domain.ErrMissingRequiredFields
	}

	txType := domain.TransactionType(input.Type)
	if !txType.Valid() {
		return nil, domain.ErrInvalidTransactionType
	}

	// Zero is allowed; only negative magnitudes are rejected
	if input.Amount.IsNegative() || domain.AmountOutOfRange(*input.Amount) {
		return nil, domain.ErrInvalidAmount
	}

	paymentMethod := domain.DefaultPaymentMethod
	if input.PaymentMethod != "" {
		paymentMethod = domain.PaymentMethod(input.PaymentMethod)
		if !paymentMethod.Valid() {
			return nil, domain.ErrInvalidPaymentMethod
		}
	}

	if domain.ExceedsLength(description, domain.MaxDescriptionLength) {
		return nil, domain.ErrDescriptionTooLong
	}
	if domain.ExceedsLength(category, domain.MaxCategoryLength) {
		return nil, domain.ErrCategoryTooLong
	}
	if domain.ExceedsLength(input.Notes, domain.MaxNotesLength) {
		return nil, domain.ErrNotesTooLong
	}

	return &domain.TransactionData{
		Type:          txType,
		Description:   description,
		Amount:        *input.Amount,
		Date:          *input.Date,
		Category:      category,
		PaymentMethod: paymentMethod,
		Notes:         input.Notes,
	}, nil
}
