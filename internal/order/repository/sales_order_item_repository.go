package repository

import (
	"context"
	"database/sql"
	"fmt"

	"salesdesk/internal/domain"
)

type MySQLSalesOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLSalesOrderItemRepository(db *sql.DB) *MySQLSalesOrderItemRepository {
	return &MySQLSalesOrderItemRepository{db: db}
}

func (r *MySQLSalesOrderItemRepository) Insert(ctx context.Context, tx *sql.Tx, item domain.SalesOrderItem) (uint, error) {
	query := `INSERT INTO sales_order_items (sales_order_id, product_id, quantity, price, amount) VALUES (?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, item.SalesOrderID, item.ProductID, item.Quantity, item.Price, item.Amount)
	if err != nil {
		return 0, fmt.Errorf("inserting sales order item: %w", err)
	}

	return lastInsertID(result)
}

func (r *MySQLSalesOrderItemRepository) FindByOrderID(ctx context.Context, orderID uint) ([]domain.SalesOrderItem, error) {
	query := `
		SELECT id, sales_order_id, product_id, quantity, price, amount
		FROM sales_order_items
		WHERE sales_order_id = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying sales order items: %w", err)
	}
	defer rows.Close()

	items := []domain.SalesOrderItem{}
	for rows.Next() {
		var item domain.SalesOrderItem
		if err := rows.Scan(&item.ID, &item.SalesOrderID, &item.ProductID, &item.Quantity, &item.Price, &item.Amount); err != nil {
			return nil, fmt.Errorf("scanning sales order item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sales order item rows: %w", err)
	}

	return items, nil
}
