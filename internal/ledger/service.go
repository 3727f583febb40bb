package ledger

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
)

// RepositoryPort abstracts persistence for the service.
type RepositoryPort interface {
	List(ctx context.Context) ([]Transaction, error)
	Get(ctx context.Context, id string) (Transaction, error)
	Insert(ctx context.Context, tx Transaction) error
	Update(ctx context.Context, tx Transaction) error
	Delete(ctx context.Context, id string) error
}

// WarmupEnqueuer schedules a background summary rebuild after mutations.
type WarmupEnqueuer interface {
	EnqueueSummaryWarmup(ctx context.Context) error
}

// IDGenerator produces identifiers for new transactions.
type IDGenerator func() string

// Service coordinates the transaction ledger and the dashboard summary.
type Service struct {
	repo     RepositoryPort
	cache    *Cache
	warmups  WarmupEnqueuer
	validate *validator.Validate
	newID    IDGenerator
	group    singleflight.Group
}

// NewService builds Service. cache and warmups may be nil.
func NewService(repo RepositoryPort, cache *Cache, warmups WarmupEnqueuer, newID IDGenerator) *Service {
	return &Service{repo: repo, cache: cache, warmups: warmups, validate: validator.New(), newID: newID}
}

// List returns the full ledger in store order.
func (s *Service) List(ctx context.Context) ([]Transaction, error) {
	return s.repo.List(ctx)
}

// Get resolves one ledger entry.
func (s *Service) Get(ctx context.Context, id string) (Transaction, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and records a new transaction.
func (s *Service) Create(ctx context.Context, input TransactionInput) (Transaction, error) {
	if err := s.validate.Struct(input); err != nil {
		return Transaction{}, fmt.Errorf("ledger: invalid transaction: %w", err)
	}
	tx := Transaction{
		ID:           s.newID(),
		Type:         input.Type,
		Amount:       input.Amount,
		Date:         input.Date,
		Category:     input.Category,
		CustomerName: input.CustomerName,
		Description:  input.Description,
		Items:        input.Items,
	}
	if err := s.repo.Insert(ctx, tx); err != nil {
		return Transaction{}, fmt.Errorf("ledger: insert transaction: %w", err)
	}
	s.afterMutation(ctx)
	return tx, nil
}

// Update validates and replaces an existing transaction.
func (s *Service) Update(ctx context.Context, id string, input TransactionInput) (Transaction, error) {
	if err := s.validate.Struct(input); err != nil {
		return Transaction{}, fmt.Errorf("ledger: invalid transaction: %w", err)
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return Transaction{}, err
	}
	tx := Transaction{
		ID:           id,
		Type:         input.Type,
		Amount:       input.Amount,
		Date:         input.Date,
		Category:     input.Category,
		CustomerName: input.CustomerName,
		Description:  input.Description,
		Items:        input.Items,
	}
	if err := s.repo.Update(ctx, tx); err != nil {
		return Transaction{}, fmt.Errorf("ledger: update transaction: %w", err)
	}
	s.afterMutation(ctx)
	return tx, nil
}

// Delete removes a transaction.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.afterMutation(ctx)
	return nil
}

// Summary returns the dashboard roll-up for the current ledger, served from
// cache when fresh. Concurrent cache misses collapse into one recompute.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	key, err := s.cache.BuildKey(ctx, "ledger", "summary")
	if err != nil {
		return Summary{}, err
	}

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		var summary Summary
		err := s.cache.FetchJSON(ctx, key, &summary, func(ctx context.Context) (interface{}, error) {
			transactions, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			return Summarize(transactions), nil
		})
		return summary, err
	})
	if err != nil {
		return Summary{}, fmt.Errorf("ledger: summarize: %w", err)
	}
	return result.(Summary), nil
}

func (s *Service) afterMutation(ctx context.Context) {
	_ = s.cache.Bump(ctx)
	if s.warmups != nil {
		_ = s.warmups.EnqueueSummaryWarmup(ctx)
	}
}
