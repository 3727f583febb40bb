package catalog

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// RepositoryPort abstracts persistence for the service.
type RepositoryPort interface {
	List(ctx context.Context) ([]StockItem, error)
	Get(ctx context.Context, id string) (StockItem, error)
	Insert(ctx context.Context, item StockItem) error
	Update(ctx context.Context, item StockItem) error
	Delete(ctx context.Context, id string) error
}

// IDGenerator produces identifiers for new stock items.
type IDGenerator func() string

// Service coordinates stock catalog operations.
type Service struct {
	repo     RepositoryPort
	validate *validator.Validate
	newID    IDGenerator
}

// NewService builds Service.
func NewService(repo RepositoryPort, newID IDGenerator) *Service {
	return &Service{repo: repo, validate: validator.New(), newID: newID}
}

// List returns all stock items in store order.
func (s *Service) List(ctx context.Context) ([]StockItem, error) {
	return s.repo.List(ctx)
}

// Get resolves a single stock item.
func (s *Service) Get(ctx context.Context, id string) (StockItem, error) {
	return s.repo.Get(ctx, id)
}

// Snapshot loads the current stock list into an immutable catalog snapshot.
// Callers hold the snapshot for a screen lifetime; it is never refreshed in place.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("catalog: load snapshot: %w", err)
	}
	return NewSnapshot(items), nil
}

// Create validates and persists a new stock item.
func (s *Service) Create(ctx context.Context, input CreateStockInput) (StockItem, error) {
	if err := s.validate.Struct(input); err != nil {
		return StockItem{}, fmt.Errorf("catalog: invalid stock item: %w", err)
	}
	item := StockItem{
		ID:          s.newID(),
		ProductName: input.ProductName,
		UnitPrice:   input.UnitPrice,
		Quantity:    input.Quantity,
		Description: input.Description,
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		return StockItem{}, fmt.Errorf("catalog: insert stock item: %w", err)
	}
	return item, nil
}

// Update validates and replaces an existing stock item.
func (s *Service) Update(ctx context.Context, id string, input UpdateStockInput) (StockItem, error) {
	if err := s.validate.Struct(input); err != nil {
		return StockItem{}, fmt.Errorf("catalog: invalid stock item: %w", err)
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return StockItem{}, err
	}
	item := StockItem{
		ID:          id,
		ProductName: input.ProductName,
		UnitPrice:   input.UnitPrice,
		Quantity:    input.Quantity,
		Description: input.Description,
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return StockItem{}, fmt.Errorf("catalog: update stock item: %w", err)
	}
	return item, nil
}

// Delete removes a stock item.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
