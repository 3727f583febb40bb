package ledger

import (
	"errors"
	"time"
)

// Recognised transaction types. Comparison is case-insensitive on input;
// anything else still counts toward the transaction total but contributes to
// neither sum.
const (
	TypePaid   = "paid"
	TypeUnpaid = "unpaid"
)

// TransactionItem is an optional product reference carried by a transaction.
type TransactionItem struct {
	Product  string  `json:"product"`
	Name     string  `json:"name,omitempty"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Transaction is one entry of the paid/unpaid ledger.
type Transaction struct {
	ID           string            `json:"id"`
	Type         string            `json:"type"`
	Amount       float64           `json:"amount"`
	Date         time.Time         `json:"date"`
	Category     string            `json:"category,omitempty"`
	CustomerName string            `json:"customerName,omitempty"`
	Description  string            `json:"description,omitempty"`
	Items        []TransactionItem `json:"items,omitempty"`
}

// Summary is the dashboard roll-up of a ledger snapshot. TotalAmount is
// strictly TotalPaid + TotalUnpaid, so it may be less than the sum of all
// transaction amounts when unrecognised types are present.
type Summary struct {
	TotalTransactions int           `json:"totalTransactions"`
	TotalPaid         float64       `json:"totalPaid"`
	TotalUnpaid       float64       `json:"totalUnpaid"`
	TotalAmount       float64       `json:"totalAmount"`
	Recent            []Transaction `json:"recentTransactions"`
}

// ErrTransactionNotFound indicates a missing ledger entry.
var ErrTransactionNotFound = errors.New("ledger: transaction not found")

// TransactionInput describes a new or replacement ledger entry.
type TransactionInput struct {
	Type         string            `json:"type" validate:"required"`
	Amount       float64           `json:"amount" validate:"gte=0"`
	Date         time.Time         `json:"date" validate:"required"`
	Category     string            `json:"category"`
	CustomerName string            `json:"customerName"`
	Description  string            `json:"description"`
	Items        []TransactionItem `json:"items" validate:"dive"`
}
