package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrDescriptionTooLong     = errors.New("description exceeds maximum length")
	ErrNotesTooLong           = errors.New("notes exceed maximum length")
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodDebitCard    PaymentMethod = "debit_card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCrypto       PaymentMethod = "crypto"
)

// DefaultPaymentMethod is stored when a request omits payment_method
const DefaultPaymentMethod = PaymentMethodCash

// Valid reports whether m is one of the accepted payment methods
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodBankTransfer, PaymentMethodCrypto:
		return true
	}
	return false
}

type Transaction struct {
	ID            int32
	Type          TransactionType
	Description   string
	Amount        decimal.Decimal
	Date          time.Time
	Category      string
	PaymentMethod PaymentMethod
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TransactionFilters narrows a transaction listing. Nil fields are not applied.
type TransactionFilters struct {
	Type      *TransactionType
	Category  *string
	StartDate *time.Time
	EndDate   *time.Time
}

// Matches reports whether t satisfies every set filter
func (f *TransactionFilters) Matches(t *Transaction) bool {
	if f == nil {
		return true
	}
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	if f.Category != nil && t.Category != *f.Category {
		return false
	}
	if f.StartDate != nil && t.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.Date.After(*f.EndDate) {
		return false
	}
	return true
}

const (
	DefaultTransactionLimit  = 100
	DefaultTransactionOffset = 0
)

// Pagination is a limit/offset window over an ordered listing
type Pagination struct {
	Limit  int32
	Offset int32
}

// DefaultPagination returns the window used when a request supplies none
func DefaultPagination() Pagination {
	return Pagination{Limit: DefaultTransactionLimit, Offset: DefaultTransactionOffset}
}

// TransactionData holds every mutable transaction field for create and full replace
type TransactionData struct {
	Type          TransactionType
	Description   string
	Amount        decimal.Decimal
	Date          time.Time
	Category      string
	PaymentMethod PaymentMethod
	Notes         string
}

type TransactionRepository interface {
	Create(ctx context.Context, data *TransactionData) (*Transaction, error)
	GetByID(ctx context.Context, id int32) (*Transaction, error)
	List(ctx context.Context, filters *TransactionFilters, page Pagination) ([]*Transaction, error)
	ListAll(ctx context.Context, filters *TransactionFilters) ([]*Transaction, error)
	Update(ctx context.Context, id int32, data *TransactionData) (*Transaction, error)
	Delete(ctx context.Context, id int32) (int32, error)
}
