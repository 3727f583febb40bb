package billing

import (
	"context"
	"fmt"
	"time"
)

// RepositoryPort abstracts the order store for the service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id string) (Order, error)
}

// TxRepository exposes the transactional operations used when settling a bill.
type TxRepository interface {
	InsertOrder(ctx context.Context, order Order) error
	InsertOrderItems(ctx context.Context, orderID string, items []OrderItem) error
	DecrementStockByName(ctx context.Context, productName string, quantity int) error
}

// IDGenerator produces identifiers for settled orders.
type IDGenerator func() string

// Service is the order store: it settles submission payloads and serves
// billing history. Stock decrements happen here, in the same transaction as
// the order insert, which is what finally resolves the composition-time race
// on availability.
type Service struct {
	repo  RepositoryPort
	newID IDGenerator
	clock func() time.Time
}

// NewService builds Service.
func NewService(repo RepositoryPort, newID IDGenerator) *Service {
	return &Service{repo: repo, newID: newID, clock: func() time.Time { return time.Now().UTC() }}
}

// Save settles a submission payload into a stored order and decrements the
// referenced stock. Returns ErrInsufficientStock when availability changed
// since the draft was composed.
func (s *Service) Save(ctx context.Context, payload OrderPayload) (Order, error) {
	if payload.CustomerName == "" || payload.PhoneNumber == "" {
		return Order{}, ErrMissingCustomerInfo
	}
	if len(payload.Items) == 0 {
		return Order{}, ErrEmptyOrder
	}
	for _, item := range payload.Items {
		if item.ItemName == "" {
			return Order{}, ErrEmptyOrder
		}
	}

	order := Order{
		ID:           s.newID(),
		CustomerName: payload.CustomerName,
		PhoneNumber:  payload.PhoneNumber,
		CreatedAt:    s.clock(),
		FinalTotal:   payload.FinalTotal,
	}
	for _, item := range payload.Items {
		order.Items = append(order.Items, OrderItem{
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Price:    item.Price,
			Total:    item.Total,
		})
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.InsertOrder(ctx, order); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		if err := tx.InsertOrderItems(ctx, order.ID, order.Items); err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
		for _, item := range order.Items {
			if item.Quantity == 0 {
				continue
			}
			if err := tx.DecrementStockByName(ctx, item.ItemName, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Order{}, err
	}
	return order, nil
}

// History lists settled orders newest-first, optionally filtered by customer
// name.
func (s *Service) History(ctx context.Context, searchTerm string) ([]Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("billing: list orders: %w", err)
	}
	return FilterByCustomer(orders, searchTerm), nil
}

// Get resolves one settled order.
func (s *Service) Get(ctx context.Context, id string) (Order, error) {
	return s.repo.Get(ctx, id)
}
