package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryStockRepo struct {
	items []StockItem
}

func (r *memoryStockRepo) List(ctx context.Context) ([]StockItem, error) {
	out := make([]StockItem, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *memoryStockRepo) Get(ctx context.Context, id string) (StockItem, error) {
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return StockItem{}, ErrNotFound
}

func (r *memoryStockRepo) Insert(ctx context.Context, item StockItem) error {
	r.items = append(r.items, item)
	return nil
}

func (r *memoryStockRepo) Update(ctx context.Context, item StockItem) error {
	for i := range r.items {
		if r.items[i].ID == item.ID {
			r.items[i] = item
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryStockRepo) Delete(ctx context.Context, id string) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func newCatalogService() (*Service, *memoryStockRepo) {
	repo := &memoryStockRepo{}
	n := 0
	svc := NewService(repo, func() string {
		n++
		return fmt.Sprintf("stock-%d", n)
	})
	return svc, repo
}

func TestCreateStock(t *testing.T) {
	svc, repo := newCatalogService()
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateStockInput{ProductName: "Pen", Quantity: 5, UnitPrice: 10})
	require.NoError(t, err)
	require.Equal(t, "stock-1", item.ID)
	require.Len(t, repo.items, 1)
}

func TestCreateStockRejectsNegativeValues(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateStockInput{ProductName: "Pen", Quantity: -1, UnitPrice: 10})
	require.Error(t, err)

	_, err = svc.Create(ctx, CreateStockInput{ProductName: "Pen", Quantity: 1, UnitPrice: -10})
	require.Error(t, err)

	_, err = svc.Create(ctx, CreateStockInput{Quantity: 1, UnitPrice: 10})
	require.Error(t, err)
}

func TestUpdateStock(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateStockInput{ProductName: "Pen", Quantity: 5, UnitPrice: 10})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, item.ID, UpdateStockInput{ProductName: "Blue Pen", Quantity: 3, UnitPrice: 12})
	require.NoError(t, err)
	require.Equal(t, item.ID, updated.ID)
	require.Equal(t, "Blue Pen", updated.ProductName)

	_, err = svc.Update(ctx, "missing", UpdateStockInput{ProductName: "x", Quantity: 1, UnitPrice: 1})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteStock(t *testing.T) {
	svc, repo := newCatalogService()
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateStockInput{ProductName: "Pen", Quantity: 5, UnitPrice: 10})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, item.ID))
	require.Empty(t, repo.items)
	require.ErrorIs(t, svc.Delete(ctx, item.ID), ErrNotFound)
}

func TestSnapshotLoadsCurrentStock(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateStockInput{ProductName: "Pen", Quantity: 5, UnitPrice: 10})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateStockInput{ProductName: "Notebook", Quantity: 2, UnitPrice: 45})
	require.NoError(t, err)

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, snapshot.Len())

	item, ok := snapshot.Lookup("stock-2")
	require.True(t, ok)
	require.Equal(t, "Notebook", item.ProductName)
}
