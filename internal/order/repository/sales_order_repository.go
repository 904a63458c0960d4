package repository

import (
	"context"
	"database/sql"
	"fmt"

	"salesdesk/internal/domain"
	"salesdesk/internal/errors"
	mysqlinfra "salesdesk/internal/infrastructure/mysql"
)

const salesOrderColumns = `id, code, date, customer_type, customer_id, total_amount, customer_payment, payment_method, status, created_at, updated_at`

type MySQLSalesOrderRepository struct {
	db *sql.DB
}

func NewMySQLSalesOrderRepository(db *sql.DB) *MySQLSalesOrderRepository {
	return &MySQLSalesOrderRepository{db: db}
}

func scanSalesOrder(row rowScanner) (*domain.SalesOrder, error) {
	var o domain.SalesOrder
	err := row.Scan(
		&o.ID, &o.Code, &o.Date, &o.CustomerType, &o.CustomerID,
		&o.TotalAmount, &o.CustomerPayment, &o.PaymentMethod, &o.Status,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *MySQLSalesOrderRepository) Insert(ctx context.Context, tx *sql.Tx, o domain.SalesOrder) (uint, error) {
	query := `
		INSERT INTO sales_orders
			(code, date, customer_type, customer_id, total_amount, customer_payment, payment_method, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		o.Code, o.Date, o.CustomerType, o.CustomerID,
		o.TotalAmount, o.CustomerPayment, o.PaymentMethod, o.Status,
		o.CreatedAt, o.UpdatedAt,
	)
	if mysqlinfra.IsDuplicateEntry(err) {
		return 0, errors.NewConflictError(fmt.Sprintf("sales order code %q already exists", o.Code))
	}
	if err != nil {
		return 0, fmt.Errorf("inserting sales order: %w", err)
	}

	return lastInsertID(result)
}

func (r *MySQLSalesOrderRepository) FindByID(ctx context.Context, id uint) (*domain.SalesOrder, error) {
	query := `SELECT ` + salesOrderColumns + ` FROM sales_orders WHERE id = ?`

	o, err := scanSalesOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("sales order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying sales order by id: %w", err)
	}

	return o, nil
}

func (r *MySQLSalesOrderRepository) List(ctx context.Context) ([]domain.SalesOrder, error) {
	query := `SELECT ` + salesOrderColumns + ` FROM sales_orders ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying sales orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.SalesOrder{}
	for rows.Next() {
		o, err := scanSalesOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sales order row: %w", err)
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sales order rows: %w", err)
	}

	return orders, nil
}
