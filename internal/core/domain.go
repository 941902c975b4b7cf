package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const (
	StatusCompleted Status = "Completed"
	StatusPending   Status = "Pending"
	StatusRefunded  Status = "Refunded"
	StatusCancelled Status = "Cancelled"
)

const (
	TypeSale       TransactionType = "Sale"
	TypeRefund     TransactionType = "Refund"
	TypeIncome     TransactionType = "Income"
	TypeExpense    TransactionType = "Expense"
	TypeTransfer   TransactionType = "Transfer"
	TypeInvestment TransactionType = "Investment"
)

type (
	// Status is the settlement state of a transaction. The set is open:
	// unknown vendor states are carried through verbatim.
	Status string

	TransactionType string

	Money struct {
		Cents int64
	}

	// Transaction is the normalized record every other package consumes.
	// Remote records keep their original vendor payload in Raw for the
	// detail view; synthetic records leave it nil.
	Transaction struct {
		ID            string
		Date          time.Time
		Description   string
		Amount        Money
		Type          TransactionType
		Category      string
		Status        Status
		ProductName   string
		DeviceID      string
		PaymentMethod string
		NettAmount    Money
		Fee           Money
		OrderID       string
		Raw           json.RawMessage
	}

	// NewTransactionInput is the create-form payload. It is validated for
	// presence, acknowledged and then discarded; nothing persists it.
	NewTransactionInput struct {
		Description string
		Amount      Money
		Date        time.Time
		Type        TransactionType
		Category    string
		Status      Status
		Notes       string
		Reference   string
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyType        = errors.New("empty transaction type")
	ErrEmptyStatus      = errors.New("empty status")
	ErrZeroDate         = errors.New("date cannot be zero")
)

// Counted reports whether the transaction contributes to sales/revenue
// totals. Refunded and cancelled records are excluded.
func (s Status) Counted() bool {
	return s != StatusRefunded && s != StatusCancelled
}

func (in NewTransactionInput) Validate() error {
	if len(strings.TrimSpace(in.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(in.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if in.Amount.Cents == 0 {
		return ErrInvalidAmount
	}
	if in.Date.IsZero() {
		return ErrZeroDate
	}
	if strings.TrimSpace(string(in.Type)) == "" {
		return ErrEmptyType
	}
	if strings.TrimSpace(in.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(string(in.Status)) == "" {
		return ErrEmptyStatus
	}
	return nil
}
