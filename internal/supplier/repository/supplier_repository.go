package repository

import (
	"context"
	"database/sql"
	"fmt"

	"salesdesk/internal/domain"
	"salesdesk/internal/errors"
	mysqlinfra "salesdesk/internal/infrastructure/mysql"
)

const supplierColumns = `id, code, name, phone, address, contact_person, notes`

type MySQLSupplierRepository struct {
	db *sql.DB
}

func NewMySQLSupplierRepository(db *sql.DB) *MySQLSupplierRepository {
	return &MySQLSupplierRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSupplier(row rowScanner) (*domain.Supplier, error) {
	var s domain.Supplier
	if err := row.Scan(&s.ID, &s.Code, &s.Name, &s.Phone, &s.Address, &s.ContactPerson, &s.Notes); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *MySQLSupplierRepository) FindByID(ctx context.Context, id uint) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = ?`

	s, err := scanSupplier(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("supplier with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying supplier by id: %w", err)
	}

	return s, nil
}

func (r *MySQLSupplierRepository) List(ctx context.Context, search string) ([]domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers`
	var args []any
	if search != "" {
		query += ` WHERE (name LIKE ? OR code LIKE ?)`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := []domain.Supplier{}
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning supplier row: %w", err)
		}
		suppliers = append(suppliers, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating supplier rows: %w", err)
	}

	return suppliers, nil
}

func (r *MySQLSupplierRepository) Insert(ctx context.Context, s domain.Supplier) (uint, error) {
	query := `
		INSERT INTO suppliers (code, name, phone, address, contact_person, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, s.Code, s.Name, s.Phone, s.Address, s.ContactPerson, s.Notes)
	if mysqlinfra.IsDuplicateEntry(err) {
		return 0, errors.NewConflictError(fmt.Sprintf("supplier code %q already exists", s.Code))
	}
	if err != nil {
		return 0, fmt.Errorf("inserting supplier: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLSupplierRepository) Update(ctx context.Context, s domain.Supplier) error {
	query := `
		UPDATE suppliers
		SET code = ?, name = ?, phone = ?, address = ?, contact_person = ?, notes = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, s.Code, s.Name, s.Phone, s.Address, s.ContactPerson, s.Notes, s.ID)
	if mysqlinfra.IsDuplicateEntry(err) {
		return errors.NewConflictError(fmt.Sprintf("supplier code %q already exists", s.Code))
	}
	if err != nil {
		return fmt.Errorf("updating supplier: %w", err)
	}

	return requireRow(result, s.ID)
}

func (r *MySQLSupplierRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = ?`, id)
	if mysqlinfra.IsReferenced(err) {
		return errors.NewConflictError(fmt.Sprintf("supplier with id %d is referenced by purchase orders", id))
	}
	if err != nil {
		return fmt.Errorf("deleting supplier: %w", err)
	}

	return requireRow(result, id)
}

func requireRow(result sql.Result, id uint) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("supplier with id %d not found", id))
	}

	return nil
}
