package billing

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryOrderRepo struct {
	orders []Order
	stock  map[string]int
}

func newMemoryOrderRepo(stock map[string]int) *memoryOrderRepo {
	if stock == nil {
		stock = map[string]int{}
	}
	return &memoryOrderRepo{stock: stock}
}

type memoryOrderTx struct {
	repo    *memoryOrderRepo
	pending []Order
	stock   map[string]int
}

func (r *memoryOrderRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	stock := make(map[string]int, len(r.stock))
	for k, v := range r.stock {
		stock[k] = v
	}
	tx := &memoryOrderTx{repo: r, stock: stock}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	r.orders = append(r.orders, tx.pending...)
	r.stock = tx.stock
	return nil
}

func (r *memoryOrderRepo) List(ctx context.Context) ([]Order, error) {
	// Newest first, like the SQL repository.
	out := make([]Order, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		out = append(out, r.orders[i])
	}
	return out, nil
}

func (r *memoryOrderRepo) Get(ctx context.Context, id string) (Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrOrderNotFound
}

func (tx *memoryOrderTx) InsertOrder(ctx context.Context, order Order) error {
	tx.pending = append(tx.pending, order)
	return nil
}

func (tx *memoryOrderTx) InsertOrderItems(ctx context.Context, orderID string, items []OrderItem) error {
	for i := range tx.pending {
		if tx.pending[i].ID == orderID {
			tx.pending[i].Items = items
		}
	}
	return nil
}

func (tx *memoryOrderTx) DecrementStockByName(ctx context.Context, productName string, quantity int) error {
	have, ok := tx.stock[productName]
	if !ok || have < quantity {
		return ErrInsufficientStock
	}
	tx.stock[productName] = have - quantity
	return nil
}

func newTestService(stock map[string]int) (*Service, *memoryOrderRepo) {
	repo := newMemoryOrderRepo(stock)
	n := 0
	svc := NewService(repo, func() string {
		n++
		return fmt.Sprintf("order-%d", n)
	})
	return svc, repo
}

func validPayload() OrderPayload {
	return OrderPayload{
		CustomerName: "Jane",
		PhoneNumber:  "555",
		Items: []PayloadItem{
			{ItemName: "Pen", Quantity: 3, Price: 12, Total: 36},
		},
		FinalTotal: 36,
	}
}

func TestSaveSettlesOrderAndDecrementsStock(t *testing.T) {
	svc, repo := newTestService(map[string]int{"Pen": 5})
	ctx := context.Background()

	order, err := svc.Save(ctx, validPayload())
	require.NoError(t, err)
	require.Equal(t, "Jane", order.CustomerName)
	require.Equal(t, 36.0, order.FinalTotal)
	require.Len(t, order.Items, 1)
	require.Equal(t, 2, repo.stock["Pen"])
	require.Len(t, repo.orders, 1)
}

func TestSaveRejectsWhenStockRanOut(t *testing.T) {
	svc, repo := newTestService(map[string]int{"Pen": 2})
	ctx := context.Background()

	_, err := svc.Save(ctx, validPayload())
	require.ErrorIs(t, err, ErrInsufficientStock)
	// Transaction rolled back: nothing stored, stock untouched.
	require.Empty(t, repo.orders)
	require.Equal(t, 2, repo.stock["Pen"])
}

func TestSaveValidatesPayload(t *testing.T) {
	svc, _ := newTestService(map[string]int{"Pen": 5})
	ctx := context.Background()

	payload := validPayload()
	payload.CustomerName = ""
	_, err := svc.Save(ctx, payload)
	require.ErrorIs(t, err, ErrMissingCustomerInfo)

	payload = validPayload()
	payload.Items = nil
	_, err = svc.Save(ctx, payload)
	require.ErrorIs(t, err, ErrEmptyOrder)

	payload = validPayload()
	payload.Items[0].ItemName = ""
	_, err = svc.Save(ctx, payload)
	require.ErrorIs(t, err, ErrEmptyOrder)
}

func TestHistoryAppliesSearchFilter(t *testing.T) {
	svc, _ := newTestService(map[string]int{"Pen": 50})
	ctx := context.Background()

	for _, name := range []string{"Jane", "John", "Priya"} {
		payload := validPayload()
		payload.CustomerName = name
		_, err := svc.Save(ctx, payload)
		require.NoError(t, err)
	}

	all, err := svc.History(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first.
	require.Equal(t, "Priya", all[0].CustomerName)

	johns, err := svc.History(ctx, "JOHN")
	require.NoError(t, err)
	require.Len(t, johns, 1)
	require.Equal(t, "John", johns[0].CustomerName)
}
