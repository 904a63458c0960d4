package repository

import (
	"context"
	"database/sql"
	"fmt"

	"salesdesk/internal/domain"
)

const purchaseOrderItemColumns = `id, purchase_order_id, product_id, quantity, purchase_price, selling_price, amount`

type MySQLPurchaseOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLPurchaseOrderItemRepository(db *sql.DB) *MySQLPurchaseOrderItemRepository {
	return &MySQLPurchaseOrderItemRepository{db: db}
}

func (r *MySQLPurchaseOrderItemRepository) Insert(ctx context.Context, tx *sql.Tx, item domain.PurchaseOrderItem) (uint, error) {
	query := `
		INSERT INTO purchase_order_items
			(purchase_order_id, product_id, quantity, purchase_price, selling_price, amount)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		item.PurchaseOrderID, item.ProductID, item.Quantity,
		item.PurchasePrice, item.SellingPrice, item.Amount,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting purchase order item: %w", err)
	}

	return lastInsertID(result)
}

func (r *MySQLPurchaseOrderItemRepository) FindByOrderID(ctx context.Context, orderID uint) ([]domain.PurchaseOrderItem, error) {
	return r.findByOrderID(ctx, r.db, orderID)
}

// FindByOrderIDTx reads the lines through tx so they are consistent with a
// header locked in the same transaction.
func (r *MySQLPurchaseOrderItemRepository) FindByOrderIDTx(ctx context.Context, tx *sql.Tx, orderID uint) ([]domain.PurchaseOrderItem, error) {
	return r.findByOrderID(ctx, tx, orderID)
}

func (r *MySQLPurchaseOrderItemRepository) findByOrderID(ctx context.Context, q querier, orderID uint) ([]domain.PurchaseOrderItem, error) {
	query := `SELECT ` + purchaseOrderItemColumns + ` FROM purchase_order_items WHERE purchase_order_id = ? ORDER BY id`

	rows, err := q.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying purchase order items: %w", err)
	}
	defer rows.Close()

	items := []domain.PurchaseOrderItem{}
	for rows.Next() {
		var item domain.PurchaseOrderItem
		err := rows.Scan(
			&item.ID, &item.PurchaseOrderID, &item.ProductID, &item.Quantity,
			&item.PurchasePrice, &item.SellingPrice, &item.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning purchase order item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchase order item rows: %w", err)
	}

	return items, nil
}

func (r *MySQLPurchaseOrderItemRepository) DeleteByOrderID(ctx context.Context, tx *sql.Tx, orderID uint) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM purchase_order_items WHERE purchase_order_id = ?`, orderID); err != nil {
		return fmt.Errorf("deleting purchase order items: %w", err)
	}
	return nil
}
