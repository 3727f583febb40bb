package ledger

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

// Repository persists the transaction ledger in PostgreSQL.
type Repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool, pool: pool}
}

const txColumns = "id, tx_type, amount, tx_date, category, customer_name, description"

// List returns the ledger in insertion order.
func (r *Repository) List(ctx context.Context) ([]Transaction, error) {
	rows, err := r.db.Query(ctx, "SELECT "+txColumns+" FROM transactions ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []Transaction
	index := map[string]int{}
	for rows.Next() {
		var tx Transaction
		if err := rows.Scan(&tx.ID, &tx.Type, &tx.Amount, &tx.Date, &tx.Category, &tx.CustomerName, &tx.Description); err != nil {
			return nil, err
		}
		index[tx.ID] = len(transactions)
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return transactions, nil
	}

	itemRows, err := r.db.Query(ctx,
		`SELECT transaction_id, product_id, name, quantity, price
		 FROM transaction_items ORDER BY transaction_id, line_order`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var txID string
		var item TransactionItem
		if err := itemRows.Scan(&txID, &item.Product, &item.Name, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		if i, ok := index[txID]; ok {
			transactions[i].Items = append(transactions[i].Items, item)
		}
	}
	return transactions, itemRows.Err()
}

// Get resolves one transaction with its items.
func (r *Repository) Get(ctx context.Context, id string) (Transaction, error) {
	var tx Transaction
	err := r.db.QueryRow(ctx, "SELECT "+txColumns+" FROM transactions WHERE id = $1", id).
		Scan(&tx.ID, &tx.Type, &tx.Amount, &tx.Date, &tx.Category, &tx.CustomerName, &tx.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrTransactionNotFound
	}
	if err != nil {
		return Transaction{}, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT product_id, name, quantity, price
		 FROM transaction_items WHERE transaction_id = $1 ORDER BY line_order`, id)
	if err != nil {
		return Transaction{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item TransactionItem
		if err := rows.Scan(&item.Product, &item.Name, &item.Quantity, &item.Price); err != nil {
			return Transaction{}, err
		}
		tx.Items = append(tx.Items, item)
	}
	return tx, rows.Err()
}

// Insert stores a transaction and its items atomically.
func (r *Repository) Insert(ctx context.Context, tx Transaction) error {
	return db.WithTx(ctx, r.pool, func(dbx pgx.Tx) error {
		_, err := dbx.Exec(ctx,
			`INSERT INTO transactions (id, tx_type, amount, tx_date, category, customer_name, description, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, now())`,
			tx.ID, tx.Type, tx.Amount, tx.Date, tx.Category, tx.CustomerName, tx.Description)
		if err != nil {
			return err
		}
		return insertItems(ctx, dbx, tx.ID, tx.Items)
	})
}

// Update replaces a transaction and its items atomically.
func (r *Repository) Update(ctx context.Context, tx Transaction) error {
	return db.WithTx(ctx, r.pool, func(dbx pgx.Tx) error {
		tag, err := dbx.Exec(ctx,
			`UPDATE transactions
			 SET tx_type = $2, amount = $3, tx_date = $4, category = $5, customer_name = $6, description = $7
			 WHERE id = $1`,
			tx.ID, tx.Type, tx.Amount, tx.Date, tx.Category, tx.CustomerName, tx.Description)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrTransactionNotFound
		}
		if _, err := dbx.Exec(ctx, "DELETE FROM transaction_items WHERE transaction_id = $1", tx.ID); err != nil {
			return err
		}
		return insertItems(ctx, dbx, tx.ID, tx.Items)
	})
}

// Delete removes a transaction; items cascade.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM transactions WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func insertItems(ctx context.Context, dbx dbtx, txID string, items []TransactionItem) error {
	for i, item := range items {
		_, err := dbx.Exec(ctx,
			`INSERT INTO transaction_items (transaction_id, product_id, name, quantity, price, line_order)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			txID, item.Product, item.Name, item.Quantity, item.Price, i+1)
		if err != nil {
			return err
		}
	}
	return nil
}
