package repository

import (
	"context"
	"database/sql"
	"fmt"

	"salesdesk/internal/domain"
)

type MySQLPriceAdjustmentRepository struct {
	db *sql.DB
}

func NewMySQLPriceAdjustmentRepository(db *sql.DB) *MySQLPriceAdjustmentRepository {
	return &MySQLPriceAdjustmentRepository{db: db}
}

func (r *MySQLPriceAdjustmentRepository) Insert(ctx context.Context, tx *sql.Tx, a domain.PriceAdjustment) (uint, error) {
	query := `
		INSERT INTO price_adjustments (product_id, old_price, new_price, date, user_id)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query, a.ProductID, a.OldPrice, a.NewPrice, a.Date, a.UserID)
	if err != nil {
		return 0, fmt.Errorf("inserting price adjustment: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

// List returns adjustments newest first, optionally for one product.
func (r *MySQLPriceAdjustmentRepository) List(ctx context.Context, productID *uint) ([]domain.PriceAdjustment, error) {
	query := `SELECT id, product_id, old_price, new_price, date, user_id FROM price_adjustments`
	var args []any
	if productID != nil {
		query += ` WHERE product_id = ?`
		args = append(args, *productID)
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying price adjustments: %w", err)
	}
	defer rows.Close()

	adjustments := []domain.PriceAdjustment{}
	for rows.Next() {
		var a domain.PriceAdjustment
		if err := rows.Scan(&a.ID, &a.ProductID, &a.OldPrice, &a.NewPrice, &a.Date, &a.UserID); err != nil {
			return nil, fmt.Errorf("scanning price adjustment row: %w", err)
		}
		adjustments = append(adjustments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating price adjustment rows: %w", err)
	}

	return adjustments, nil
}
