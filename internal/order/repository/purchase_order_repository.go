package repository

import (
	"context"
	"database/sql"
	"fmt"

	"salesdesk/internal/domain"
	"salesdesk/internal/errors"
	mysqlinfra "salesdesk/internal/infrastructure/mysql"
)

const purchaseOrderColumns = `id, code, date, supplier_id, documents, total_amount, paid_amount, debt, notes, created_at, updated_at`

type MySQLPurchaseOrderRepository struct {
	db *sql.DB
}

func NewMySQLPurchaseOrderRepository(db *sql.DB) *MySQLPurchaseOrderRepository {
	return &MySQLPurchaseOrderRepository{db: db}
}

func scanPurchaseOrder(row rowScanner) (*domain.PurchaseOrder, error) {
	var o domain.PurchaseOrder
	err := row.Scan(
		&o.ID, &o.Code, &o.Date, &o.SupplierID, &o.Documents,
		&o.TotalAmount, &o.PaidAmount, &o.Debt, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Insert writes the header inside tx. A supplier id with no matching row is
// reported as a dangling reference.
func (r *MySQLPurchaseOrderRepository) Insert(ctx context.Context, tx *sql.Tx, o domain.PurchaseOrder) (uint, error) {
	query := `
		INSERT INTO purchase_orders
			(code, date, supplier_id, documents, total_amount, paid_amount, debt, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		o.Code, o.Date, o.SupplierID, o.Documents,
		o.TotalAmount, o.PaidAmount, o.Debt, o.Notes,
		o.CreatedAt, o.UpdatedAt,
	)
	if mysqlinfra.IsDuplicateEntry(err) {
		return 0, errors.NewConflictError(fmt.Sprintf("purchase order code %q already exists", o.Code))
	}
	if mysqlinfra.IsMissingReference(err) && o.SupplierID != nil {
		return 0, errors.NewDanglingReferenceError("supplier", *o.SupplierID)
	}
	if err != nil {
		return 0, fmt.Errorf("inserting purchase order: %w", err)
	}

	return lastInsertID(result)
}

func (r *MySQLPurchaseOrderRepository) FindByID(ctx context.Context, id uint) (*domain.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE id = ?`

	o, err := scanPurchaseOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("purchase order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying purchase order by id: %w", err)
	}

	return o, nil
}

// FindByIDForUpdate locks the header row so a concurrent delete of the same
// order waits instead of reversing stock twice.
func (r *MySQLPurchaseOrderRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE id = ? FOR UPDATE`

	o, err := scanPurchaseOrder(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("purchase order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("locking purchase order: %w", err)
	}

	return o, nil
}

func (r *MySQLPurchaseOrderRepository) List(ctx context.Context) ([]domain.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying purchase orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.PurchaseOrder{}
	for rows.Next() {
		o, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning purchase order row: %w", err)
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchase order rows: %w", err)
	}

	return orders, nil
}

func (r *MySQLPurchaseOrderRepository) Delete(ctx context.Context, tx *sql.Tx, id uint) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM purchase_orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting purchase order: %w", err)
	}

	return requireRow(result, "purchase order", id)
}
