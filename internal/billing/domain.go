package billing

import (
	"errors"
	"fmt"
	"time"
)

// PriceSource records whether a line's unit price tracks the catalog or was
// manually overridden by the clerk.
type PriceSource string

const (
	// PriceCatalog means the unit price follows the stock item's catalog price.
	PriceCatalog PriceSource = "catalog"
	// PriceOverride means the clerk typed a price; it stays frozen until the
	// product selection changes.
	PriceOverride PriceSource = "override"
)

// Line fields accepted by Composer.SetLine.
const (
	FieldProduct  = "product"
	FieldQuantity = "quantity"
	FieldPrice    = "price"
)

// OrderLine is one row of a draft order.
type OrderLine struct {
	ProductID string
	Quantity  int
	UnitPrice float64
	Source    PriceSource
	Extra     map[string]string
}

// Total is the derived line amount. Never stored, always recomputed.
func (l OrderLine) Total() float64 {
	return float64(l.Quantity) * l.UnitPrice
}

// DraftOrder is an in-progress, unsubmitted bill. Lines keep insertion order;
// that order is the display and print order.
type DraftOrder struct {
	CustomerName  string
	CustomerPhone string
	Lines         []OrderLine
}

// PayloadItem is one denormalised line of a submission payload.
type PayloadItem struct {
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

// OrderPayload is the submission-ready shape sent to the order store.
type OrderPayload struct {
	CustomerName string        `json:"customerName"`
	PhoneNumber  string        `json:"phoneNumber"`
	Items        []PayloadItem `json:"items"`
	FinalTotal   float64       `json:"finalTotal"`
}

// OrderItem is one settled line of a stored order.
type OrderItem struct {
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

// Order is a settled bill as returned by the order store.
type Order struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customerName"`
	PhoneNumber  string      `json:"phoneNumber"`
	CreatedAt    time.Time   `json:"createdAt"`
	FinalTotal   float64     `json:"finalTotal"`
	Items        []OrderItem `json:"items"`
}

// ErrMissingCustomerInfo indicates the draft lacks a customer name or phone.
var ErrMissingCustomerInfo = errors.New("billing: customer name and phone required")

// ErrEmptyOrder indicates the draft has no lines or a line without a product.
var ErrEmptyOrder = errors.New("billing: order needs at least one item with a product")

// ErrNoSuchLine indicates a line index outside the draft.
var ErrNoSuchLine = errors.New("billing: no such line")

// ErrInsufficientStock is returned by the order store when availability
// changed between composition and submission.
var ErrInsufficientStock = errors.New("billing: insufficient stock for order item")

// ErrOrderNotFound indicates a missing settled order.
var ErrOrderNotFound = errors.New("billing: order not found")

// QuantityExceedsStockError reports a rejected quantity edit. The draft is
// left untouched; Ceiling lets the caller render the maximum the clerk may
// still enter.
type QuantityExceedsStockError struct {
	Requested int
	Ceiling   int
}

func (e *QuantityExceedsStockError) Error() string {
	return fmt.Sprintf("billing: maximum available quantity is %d (requested %d)", e.Ceiling, e.Requested)
}
