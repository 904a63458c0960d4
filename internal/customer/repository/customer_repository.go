package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"salesdesk/internal/domain"
	"salesdesk/internal/errors"
	mysqlinfra "salesdesk/internal/infrastructure/mysql"
)

const customerColumns = `id, code, name, phone, address, email, customer_type, debt, total_purchase, notes`

type MySQLCustomerRepository struct {
	db *sql.DB
}

func NewMySQLCustomerRepository(db *sql.DB) *MySQLCustomerRepository {
	return &MySQLCustomerRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID, &c.Code, &c.Name, &c.Phone, &c.Address, &c.Email,
		&c.CustomerType, &c.Debt, &c.TotalPurchase, &c.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MySQLCustomerRepository) FindByID(ctx context.Context, id uint) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = ?`

	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("customer with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying customer by id: %w", err)
	}

	return c, nil
}

// List matches search against name, code and phone.
func (r *MySQLCustomerRepository) List(ctx context.Context, search string) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	var args []any
	if search != "" {
		query += ` WHERE (name LIKE ? OR code LIKE ? OR phone LIKE ?)`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer row: %w", err)
		}
		customers = append(customers, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer rows: %w", err)
	}

	return customers, nil
}

// Insert accepts opening debt and total purchase balances.
func (r *MySQLCustomerRepository) Insert(ctx context.Context, c domain.Customer) (uint, error) {
	query := `
		INSERT INTO customers (code, name, phone, address, email, customer_type, debt, total_purchase, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		c.Code, c.Name, c.Phone, c.Address, c.Email, c.CustomerType, c.Debt, c.TotalPurchase, c.Notes,
	)
	if mysqlinfra.IsDuplicateEntry(err) {
		return 0, errors.NewConflictError(fmt.Sprintf("customer code %q already exists", c.Code))
	}
	if err != nil {
		return 0, fmt.Errorf("inserting customer: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

// Update rewrites contact fields only. Debt and total purchase belong to the
// customer ledger.
func (r *MySQLCustomerRepository) Update(ctx context.Context, c domain.Customer) error {
	query := `
		UPDATE customers
		SET code = ?, name = ?, phone = ?, address = ?, email = ?, customer_type = ?, notes = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		c.Code, c.Name, c.Phone, c.Address, c.Email, c.CustomerType, c.Notes, c.ID,
	)
	if mysqlinfra.IsDuplicateEntry(err) {
		return errors.NewConflictError(fmt.Sprintf("customer code %q already exists", c.Code))
	}
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}

	return requireRow(result, c.ID)
}

func (r *MySQLCustomerRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	return requireRow(result, id)
}

// ApplySale adds shortfall to debt and total to total purchase in a single
// statement so concurrent sales never lose an update.
func (r *MySQLCustomerRepository) ApplySale(ctx context.Context, tx *sql.Tx, id uint, shortfall, total decimal.Decimal) error {
	query := `UPDATE customers SET debt = debt + ?, total_purchase = total_purchase + ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, shortfall, total, id)
	if err != nil {
		return fmt.Errorf("applying sale to customer: %w", err)
	}

	return requireRow(result, id)
}

func requireRow(result sql.Result, id uint) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("customer with id %d not found", id))
	}

	return nil
}
