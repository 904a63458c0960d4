package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"salesdesk/internal/domain"
	"salesdesk/internal/errors"
	mysqlinfra "salesdesk/internal/infrastructure/mysql"
)

const productColumns = `id, code, name, category_id, unit, purchase_price, selling_price, stock, notes`

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.CategoryID, &p.Unit,
		&p.PurchasePrice, &p.SellingPrice, &p.Stock, &p.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MySQLRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return p, nil
}

// FindByIDForUpdate reads the product and holds its row lock until tx ends.
func (r *MySQLRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ? FOR UPDATE`

	p, err := scanProduct(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("locking product: %w", err)
	}

	return p, nil
}

func (r *MySQLRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.CategoryID != nil {
		conditions = append(conditions, "category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	if filter.Search != "" {
		conditions = append(conditions, "(name LIKE ? OR code LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	return r.queryProducts(ctx, query, args...)
}

// ListInventory returns every product ordered by name.
func (r *MySQLRepository) ListInventory(ctx context.Context) ([]domain.Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` FROM products ORDER BY name`)
}

func (r *MySQLRepository) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (r *MySQLRepository) Insert(ctx context.Context, p domain.Product) (uint, error) {
	query := `
		INSERT INTO products (code, name, category_id, unit, purchase_price, selling_price, stock, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		p.Code, p.Name, p.CategoryID, p.Unit, p.PurchasePrice, p.SellingPrice, p.Stock, p.Notes,
	)
	if mysqlinfra.IsDuplicateEntry(err) {
		return 0, errors.NewConflictError(fmt.Sprintf("product code %q already exists", p.Code))
	}
	if ref := missingCategory(err, p); ref != nil {
		return 0, ref
	}
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

// Update rewrites the descriptive and price fields. Stock is left alone; it
// only moves through the order ledger.
func (r *MySQLRepository) Update(ctx context.Context, p domain.Product) error {
	query := `
		UPDATE products
		SET code = ?, name = ?, category_id = ?, unit = ?, purchase_price = ?, selling_price = ?, notes = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		p.Code, p.Name, p.CategoryID, p.Unit, p.PurchasePrice, p.SellingPrice, p.Notes, p.ID,
	)
	if mysqlinfra.IsDuplicateEntry(err) {
		return errors.NewConflictError(fmt.Sprintf("product code %q already exists", p.Code))
	}
	if ref := missingCategory(err, p); ref != nil {
		return ref
	}
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	return requireRow(result, p.ID)
}

func (r *MySQLRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	return requireRow(result, id)
}

// AddStockAndPrices applies a purchase line: stock grows by quantity and both
// prices are overwritten, in one statement.
func (r *MySQLRepository) AddStockAndPrices(ctx context.Context, tx *sql.Tx, id uint, quantity int, purchasePrice, sellingPrice decimal.Decimal) error {
	query := `UPDATE products SET stock = stock + ?, purchase_price = ?, selling_price = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, quantity, purchasePrice, sellingPrice, id)
	if err != nil {
		return fmt.Errorf("applying purchase to product: %w", err)
	}

	return requireRow(result, id)
}

// AddStock moves stock by delta, which may be negative. Stock is not clamped.
func (r *MySQLRepository) AddStock(ctx context.Context, tx *sql.Tx, id uint, delta int) error {
	query := `UPDATE products SET stock = stock + ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("adjusting product stock: %w", err)
	}

	return requireRow(result, id)
}

func (r *MySQLRepository) UpdateSellingPrice(ctx context.Context, tx *sql.Tx, id uint, price decimal.Decimal) error {
	query := `UPDATE products SET selling_price = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, price, id)
	if err != nil {
		return fmt.Errorf("updating selling price: %w", err)
	}

	return requireRow(result, id)
}

// missingCategory maps a foreign key failure on category_id.
func missingCategory(err error, p domain.Product) error {
	if !mysqlinfra.IsMissingReference(err) || p.CategoryID == nil {
		return nil
	}
	return errors.NewDanglingReferenceError("category", *p.CategoryID)
}

func requireRow(result sql.Result, id uint) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}

	return nil
}
