package catalog

import "errors"

// StockItem is one sellable product together with its live availability.
type StockItem struct {
	ID          string  `json:"id"`
	ProductName string  `json:"productName"`
	UnitPrice   float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description,omitempty"`
}

// Snapshot is a read-only view of the stock list as served by the store.
// It is safe to share between callers; lookups never mutate it.
type Snapshot struct {
	items []StockItem
	byID  map[string]int
}

// NewSnapshot copies items into an immutable snapshot, preserving order.
func NewSnapshot(items []StockItem) Snapshot {
	copied := make([]StockItem, len(items))
	copy(copied, items)
	index := make(map[string]int, len(copied))
	for i, item := range copied {
		if _, ok := index[item.ID]; !ok {
			index[item.ID] = i
		}
	}
	return Snapshot{items: copied, byID: index}
}

// Lookup resolves a stock item by id.
func (s Snapshot) Lookup(id string) (StockItem, bool) {
	if id == "" {
		return StockItem{}, false
	}
	i, ok := s.byID[id]
	if !ok {
		return StockItem{}, false
	}
	return s.items[i], true
}

// Items returns the stock list in the order the store supplied it.
func (s Snapshot) Items() []StockItem {
	out := make([]StockItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len reports the number of items in the snapshot.
func (s Snapshot) Len() int {
	return len(s.items)
}

// ErrNotFound indicates the referenced stock item is absent from the store.
var ErrNotFound = errors.New("catalog: stock item not found")

// CreateStockInput describes a new stock item.
type CreateStockInput struct {
	ProductName string  `json:"productName" validate:"required,max=200"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	UnitPrice   float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
}

// UpdateStockInput describes a full update of an existing stock item.
type UpdateStockInput struct {
	ProductName string  `json:"productName" validate:"required,max=200"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	UnitPrice   float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
}
