package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salesdesk/internal/domain"
	apperrors "salesdesk/internal/errors"
)

type mockProductRepository struct {
	FindByIDForUpdateFunc  func(ctx context.Context, tx *sql.Tx, id uint) (*domain.Product, error)
	UpdateSellingPriceFunc func(ctx context.Context, tx *sql.Tx, id uint, price decimal.Decimal) error
}

func (m *mockProductRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Product, error) {
	return m.FindByIDForUpdateFunc(ctx, tx, id)
}

func (m *mockProductRepository) UpdateSellingPrice(ctx context.Context, tx *sql.Tx, id uint, price decimal.Decimal) error {
	return m.UpdateSellingPriceFunc(ctx, tx, id, price)
}

type mockRepository struct {
	InsertFunc func(ctx context.Context, tx *sql.Tx, a domain.PriceAdjustment) (uint, error)
	ListFunc   func(ctx context.Context, productID *uint) ([]domain.PriceAdjustment, error)
}

func (m *mockRepository) Insert(ctx context.Context, tx *sql.Tx, a domain.PriceAdjustment) (uint, error) {
	return m.InsertFunc(ctx, tx, a)
}

func (m *mockRepository) List(ctx context.Context, productID *uint) ([]domain.PriceAdjustment, error) {
	return m.ListFunc(ctx, productID)
}

var fixedNow = time.Date(2026, 4, 10, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, products ProductRepository, adjustments Repository) (*PriceAdjustmentService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewService(db, products, adjustments, zap.NewNop(), 5*time.Second)
	svc.now = func() time.Time { return fixedNow }
	return svc, mock
}

func TestAdjust_RecordsLockedOldPrice(t *testing.T) {
	var steps []string

	products := &mockProductRepository{
		FindByIDForUpdateFunc: func(ctx context.Context, tx *sql.Tx, id uint) (*domain.Product, error) {
			steps = append(steps, "lock")
			return &domain.Product{ID: id, SellingPrice: decimal.RequireFromString("18.00")}, nil
		},
		UpdateSellingPriceFunc: func(ctx context.Context, tx *sql.Tx, id uint, price decimal.Decimal) error {
			steps = append(steps, "price")
			assert.True(t, decimal.NewFromInt(20).Equal(price))
			return nil
		},
	}
	adjustments := &mockRepository{
		InsertFunc: func(ctx context.Context, tx *sql.Tx, a domain.PriceAdjustment) (uint, error) {
			steps = append(steps, "insert")
			assert.True(t, decimal.NewFromInt(18).Equal(a.OldPrice))
			assert.Equal(t, fixedNow, a.Date)
			return 4, nil
		},
	}

	svc, mock := newTestService(t, products, adjustments)
	mock.ExpectBegin()
	mock.ExpectCommit()

	adj, err := svc.Adjust(context.Background(), domain.PriceAdjustment{
		ProductID: 3,
		OldPrice:  decimal.NewFromInt(999),
		NewPrice:  decimal.NewFromInt(20),
		UserID:    1,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"lock", "insert", "price"}, steps)
	assert.Equal(t, uint(4), adj.ID)
	assert.True(t, decimal.NewFromInt(18).Equal(adj.OldPrice))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjust_MissingProductRollsBack(t *testing.T) {
	products := &mockProductRepository{
		FindByIDForUpdateFunc: func(ctx context.Context, tx *sql.Tx, id uint) (*domain.Product, error) {
			return nil, apperrors.NewNotFoundError("product with id 3 not found")
		},
	}
	adjustments := &mockRepository{
		InsertFunc: func(ctx context.Context, tx *sql.Tx, a domain.PriceAdjustment) (uint, error) {
			t.Fatal("insert without a product")
			return 0, nil
		},
	}

	svc, mock := newTestService(t, products, adjustments)
	mock.ExpectBegin()
	mock.ExpectRollback()

	adj, err := svc.Adjust(context.Background(), domain.PriceAdjustment{ProductID: 3, NewPrice: decimal.NewFromInt(1), UserID: 1})

	assert.Nil(t, adj)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjust_PriceUpdateFailureRollsBack(t *testing.T) {
	products := &mockProductRepository{
		FindByIDForUpdateFunc: func(ctx context.Context, tx *sql.Tx, id uint) (*domain.Product, error) {
			return &domain.Product{ID: id}, nil
		},
		UpdateSellingPriceFunc: func(ctx context.Context, tx *sql.Tx, id uint, price decimal.Decimal) error {
			return errors.New("connection reset")
		},
	}
	adjustments := &mockRepository{
		InsertFunc: func(ctx context.Context, tx *sql.Tx, a domain.PriceAdjustment) (uint, error) {
			return 1, nil
		},
	}

	svc, mock := newTestService(t, products, adjustments)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Adjust(context.Background(), domain.PriceAdjustment{ProductID: 3, UserID: 1})

	assert.EqualError(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjust_KeepsCallerDate(t *testing.T) {
	given := time.Date(2026, 3, 1, 8, 0, 0, 0, time.FixedZone("ICT", 7*3600))

	products := &mockProductRepository{
		FindByIDForUpdateFunc: func(ctx context.Context, tx *sql.Tx, id uint) (*domain.Product, error) {
			return &domain.Product{ID: id}, nil
		},
		UpdateSellingPriceFunc: func(ctx context.Context, tx *sql.Tx, id uint, price decimal.Decimal) error {
			return nil
		},
	}
	adjustments := &mockRepository{
		InsertFunc: func(ctx context.Context, tx *sql.Tx, a domain.PriceAdjustment) (uint, error) {
			assert.Equal(t, time.UTC, a.Date.Location())
			assert.True(t, given.Equal(a.Date))
			return 1, nil
		},
	}

	svc, mock := newTestService(t, products, adjustments)
	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.Adjust(context.Background(), domain.PriceAdjustment{ProductID: 3, Date: given, UserID: 1})
	require.NoError(t, err)
}
