package billing

import (
	"strconv"
	"strings"

	"github.com/billbook/billbook/internal/catalog"
)

// Composer edits draft orders against a stock catalog snapshot. Every
// operation returns a new draft value; the input draft is never mutated, so a
// rejected edit leaves the caller's draft exactly as it was.
type Composer struct {
	catalog catalog.Snapshot
}

// NewComposer builds a Composer over the given snapshot.
func NewComposer(snapshot catalog.Snapshot) Composer {
	return Composer{catalog: snapshot}
}

// NewDraft creates an empty draft with a single blank line.
func NewDraft() DraftOrder {
	return DraftOrder{Lines: []OrderLine{blankLine()}}
}

func blankLine() OrderLine {
	return OrderLine{Quantity: 1, UnitPrice: 0, Source: PriceCatalog}
}

// SetLine applies one field edit to the line at index and returns the
// resulting draft. Numeric text that does not parse coerces to zero; the one
// rejected edit is a quantity above the line's stock ceiling, which returns
// the draft unchanged together with a QuantityExceedsStockError.
func (c Composer) SetLine(draft DraftOrder, index int, field, value string) (DraftOrder, error) {
	if index < 0 || index >= len(draft.Lines) {
		return draft, ErrNoSuchLine
	}

	line := draft.Lines[index]
	switch field {
	case FieldProduct:
		line.ProductID = value
		line.Source = PriceCatalog
		if item, ok := c.catalog.Lookup(value); ok {
			line.UnitPrice = item.UnitPrice
		} else {
			line.UnitPrice = 0
		}
	case FieldQuantity:
		qty, _ := strconv.Atoi(strings.TrimSpace(value))
		if qty < 0 {
			qty = 0
		}
		if ceiling := c.ceiling(line); qty > ceiling {
			return draft, &QuantityExceedsStockError{Requested: qty, Ceiling: ceiling}
		}
		line.Quantity = qty
	case FieldPrice:
		price, _ := strconv.ParseFloat(strings.TrimSpace(value), 64)
		line.UnitPrice = price
		line.Source = PriceOverride
	default:
		extra := make(map[string]string, len(line.Extra)+1)
		for k, v := range line.Extra {
			extra[k] = v
		}
		extra[field] = value
		line.Extra = extra
	}

	return replaceLine(draft, index, line), nil
}

// AddLine appends a blank line to the draft.
func (c Composer) AddLine(draft DraftOrder) DraftOrder {
	lines := make([]OrderLine, 0, len(draft.Lines)+1)
	lines = append(lines, draft.Lines...)
	lines = append(lines, blankLine())
	draft.Lines = lines
	return draft
}

// RemoveLine drops the line at index. Removing the last remaining line is
// allowed; out-of-range indexes leave the draft unchanged.
func (c Composer) RemoveLine(draft DraftOrder, index int) DraftOrder {
	if index < 0 || index >= len(draft.Lines) {
		return draft
	}
	lines := make([]OrderLine, 0, len(draft.Lines)-1)
	lines = append(lines, draft.Lines[:index]...)
	lines = append(lines, draft.Lines[index+1:]...)
	draft.Lines = lines
	return draft
}

// Total computes the draft's grand total as the sum of line totals.
func (c Composer) Total(draft DraftOrder) float64 {
	var sum float64
	for _, line := range draft.Lines {
		sum += line.Total()
	}
	return sum
}

// Submission validates the draft and produces the payload the order store
// accepts. Product names are resolved from the snapshot at submission time
// rather than cached on the lines, so a refreshed snapshot is always honoured.
func (c Composer) Submission(draft DraftOrder) (OrderPayload, error) {
	if draft.CustomerName == "" || draft.CustomerPhone == "" {
		return OrderPayload{}, ErrMissingCustomerInfo
	}
	if len(draft.Lines) == 0 {
		return OrderPayload{}, ErrEmptyOrder
	}
	for _, line := range draft.Lines {
		if line.ProductID == "" {
			return OrderPayload{}, ErrEmptyOrder
		}
	}

	items := make([]PayloadItem, 0, len(draft.Lines))
	for _, line := range draft.Lines {
		var name string
		if item, ok := c.catalog.Lookup(line.ProductID); ok {
			name = item.ProductName
		}
		items = append(items, PayloadItem{
			ItemName: name,
			Quantity: line.Quantity,
			Price:    line.UnitPrice,
			Total:    line.Total(),
		})
	}

	return OrderPayload{
		CustomerName: draft.CustomerName,
		PhoneNumber:  draft.CustomerPhone,
		Items:        items,
		FinalTotal:   c.Total(draft),
	}, nil
}

// ceiling re-derives the maximum orderable quantity for a line from the
// snapshot. An unresolved product has a ceiling of zero.
func (c Composer) ceiling(line OrderLine) int {
	item, ok := c.catalog.Lookup(line.ProductID)
	if !ok {
		return 0
	}
	return item.Quantity
}

func replaceLine(draft DraftOrder, index int, line OrderLine) DraftOrder {
	lines := make([]OrderLine, len(draft.Lines))
	copy(lines, draft.Lines)
	lines[index] = line
	draft.Lines = lines
	return draft
}
