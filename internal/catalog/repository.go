package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository persists the stock catalog in PostgreSQL.
type Repository struct {
	db dbtx
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

const stockColumns = "id, product_name, unit_price, quantity, description"

// List returns stock items ordered by creation time.
func (r *Repository) List(ctx context.Context) ([]StockItem, error) {
	rows, err := r.db.Query(ctx, "SELECT "+stockColumns+" FROM stock_items ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []StockItem
	for rows.Next() {
		var item StockItem
		if err := rows.Scan(&item.ID, &item.ProductName, &item.UnitPrice, &item.Quantity, &item.Description); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Get resolves one stock item by id.
func (r *Repository) Get(ctx context.Context, id string) (StockItem, error) {
	var item StockItem
	err := r.db.QueryRow(ctx, "SELECT "+stockColumns+" FROM stock_items WHERE id = $1", id).
		Scan(&item.ID, &item.ProductName, &item.UnitPrice, &item.Quantity, &item.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return StockItem{}, ErrNotFound
	}
	if err != nil {
		return StockItem{}, err
	}
	return item, nil
}

// Insert stores a new stock item.
func (r *Repository) Insert(ctx context.Context, item StockItem) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO stock_items (id, product_name, unit_price, quantity, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now(), now())`,
		item.ID, item.ProductName, item.UnitPrice, item.Quantity, item.Description)
	return err
}

// Update replaces a stock item's attributes.
func (r *Repository) Update(ctx context.Context, item StockItem) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE stock_items
		 SET product_name = $2, unit_price = $3, quantity = $4, description = $5, updated_at = now()
		 WHERE id = $1`,
		item.ID, item.ProductName, item.UnitPrice, item.Quantity, item.Description)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a stock item.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM stock_items WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
