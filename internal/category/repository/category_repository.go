package repository

import (
	"context"
	"database/sql"
	"fmt"

	"salesdesk/internal/domain"
	"salesdesk/internal/errors"
	mysqlinfra "salesdesk/internal/infrastructure/mysql"
)

const categoryColumns = `id, code, name, notes`

type MySQLCategoryRepository struct {
	db *sql.DB
}

func NewMySQLCategoryRepository(db *sql.DB) *MySQLCategoryRepository {
	return &MySQLCategoryRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (*domain.ProductCategory, error) {
	var c domain.ProductCategory
	if err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Notes); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MySQLCategoryRepository) FindByID(ctx context.Context, id uint) (*domain.ProductCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM product_categories WHERE id = ?`

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("category with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying category by id: %w", err)
	}

	return c, nil
}

func (r *MySQLCategoryRepository) List(ctx context.Context, search string) ([]domain.ProductCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM product_categories`
	var args []any
	if search != "" {
		query += ` WHERE (name LIKE ? OR code LIKE ?)`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.ProductCategory{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		categories = append(categories, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return categories, nil
}

func (r *MySQLCategoryRepository) Insert(ctx context.Context, c domain.ProductCategory) (uint, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO product_categories (code, name, notes) VALUES (?, ?, ?)`,
		c.Code, c.Name, c.Notes,
	)
	if mysqlinfra.IsDuplicateEntry(err) {
		return 0, errors.NewConflictError(fmt.Sprintf("category code %q already exists", c.Code))
	}
	if err != nil {
		return 0, fmt.Errorf("inserting category: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLCategoryRepository) Update(ctx context.Context, c domain.ProductCategory) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE product_categories SET code = ?, name = ?, notes = ? WHERE id = ?`,
		c.Code, c.Name, c.Notes, c.ID,
	)
	if mysqlinfra.IsDuplicateEntry(err) {
		return errors.NewConflictError(fmt.Sprintf("category code %q already exists", c.Code))
	}
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	return requireRow(result, c.ID)
}

// Delete is refused while any product still points at the category.
func (r *MySQLCategoryRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM product_categories WHERE id = ?`, id)
	if mysqlinfra.IsReferenced(err) {
		return errors.NewConflictError(fmt.Sprintf("category with id %d is referenced by products", id))
	}
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	return requireRow(result, id)
}

func requireRow(result sql.Result, id uint) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("category with id %d not found", id))
	}

	return nil
}
