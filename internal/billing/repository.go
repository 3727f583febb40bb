package billing

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/billbook/billbook/internal/platform/db"
)

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository persists settled orders in PostgreSQL.
type Repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool, pool: pool}
}

// WithTx executes the callback inside a repeatable-read transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{db: tx})
	})
}

type txRepo struct {
	db dbtx
}

func (r *txRepo) InsertOrder(ctx context.Context, order Order) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO orders (id, customer_name, phone_number, final_total, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		order.ID, order.CustomerName, order.PhoneNumber, order.FinalTotal, order.CreatedAt)
	return err
}

func (r *txRepo) InsertOrderItems(ctx context.Context, orderID string, items []OrderItem) error {
	for i, item := range items {
		_, err := r.db.Exec(ctx,
			`INSERT INTO order_items (order_id, item_name, quantity, price, total, line_order)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			orderID, item.ItemName, item.Quantity, item.Price, item.Total, i+1)
		if err != nil {
			return err
		}
	}
	return nil
}

// DecrementStockByName takes quantity out of the named stock item, failing
// when the remaining stock does not cover the order line.
func (r *txRepo) DecrementStockByName(ctx context.Context, productName string, quantity int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE stock_items
		 SET quantity = quantity - $2, updated_at = now()
		 WHERE product_name = $1 AND quantity >= $2`,
		productName, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// List returns settled orders with their items, newest first.
func (r *Repository) List(ctx context.Context) ([]Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, customer_name, phone_number, final_total, created_at
		 FROM orders ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	index := map[string]int{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.PhoneNumber, &o.FinalTotal, &o.CreatedAt); err != nil {
			return nil, err
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.db.Query(ctx,
		`SELECT order_id, item_name, quantity, price, total
		 FROM order_items ORDER BY order_id, line_order`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID string
		var item OrderItem
		if err := itemRows.Scan(&orderID, &item.ItemName, &item.Quantity, &item.Price, &item.Total); err != nil {
			return nil, err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return orders, itemRows.Err()
}

// Get resolves one settled order with its items.
func (r *Repository) Get(ctx context.Context, id string) (Order, error) {
	var o Order
	err := r.db.QueryRow(ctx,
		`SELECT id, customer_name, phone_number, final_total, created_at
		 FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.CustomerName, &o.PhoneNumber, &o.FinalTotal, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrOrderNotFound
	}
	if err != nil {
		return Order{}, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT item_name, quantity, price, total
		 FROM order_items WHERE order_id = $1 ORDER BY line_order`, id)
	if err != nil {
		return Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ItemName, &item.Quantity, &item.Price, &item.Total); err != nil {
			return Order{}, err
		}
		o.Items = append(o.Items, item)
	}
	return o, rows.Err()
}
