package ledger

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salesdesk/internal/domain"
	apperrors "salesdesk/internal/errors"
	"salesdesk/internal/infrastructure/metrics"
)

type mockProductRepository struct {
	AddStockAndPricesFunc func(ctx context.Context, tx *sql.Tx, id uint, quantity int, purchasePrice, sellingPrice decimal.Decimal) error
	AddStockFunc          func(ctx context.Context, tx *sql.Tx, id uint, delta int) error
}

func (m *mockProductRepository) AddStockAndPrices(ctx context.Context, tx *sql.Tx, id uint, quantity int, purchasePrice, sellingPrice decimal.Decimal) error {
	return m.AddStockAndPricesFunc(ctx, tx, id, quantity, purchasePrice, sellingPrice)
}

func (m *mockProductRepository) AddStock(ctx context.Context, tx *sql.Tx, id uint, delta int) error {
	return m.AddStockFunc(ctx, tx, id, delta)
}

type mockCustomerRepository struct {
	ApplySaleFunc func(ctx context.Context, tx *sql.Tx, id uint, shortfall, total decimal.Decimal) error
}

func (m *mockCustomerRepository) ApplySale(ctx context.Context, tx *sql.Tx, id uint, shortfall, total decimal.Decimal) error {
	return m.ApplySaleFunc(ctx, tx, id, shortfall, total)
}

func TestApplyPurchaseLine_PassesQuantityAndPrices(t *testing.T) {
	var gotQty int
	var gotPurchase, gotSelling decimal.Decimal
	repo := &mockProductRepository{
		AddStockAndPricesFunc: func(ctx context.Context, tx *sql.Tx, id uint, quantity int, purchasePrice, sellingPrice decimal.Decimal) error {
			gotQty, gotPurchase, gotSelling = quantity, purchasePrice, sellingPrice
			return nil
		},
	}

	l := NewStockLedger(repo, true, zap.NewNop())
	err := l.ApplyPurchaseLine(context.Background(), nil, domain.PurchaseOrderItem{
		ProductID: 1, Quantity: 5, PurchasePrice: decimal.NewFromInt(10), SellingPrice: decimal.NewFromInt(13),
	})

	require.NoError(t, err)
	assert.Equal(t, 5, gotQty)
	assert.True(t, decimal.NewFromInt(10).Equal(gotPurchase))
	assert.True(t, decimal.NewFromInt(13).Equal(gotSelling))
}

func TestApplySaleLine_SubtractsQuantity(t *testing.T) {
	var gotDelta int
	repo := &mockProductRepository{
		AddStockFunc: func(ctx context.Context, tx *sql.Tx, id uint, delta int) error {
			gotDelta = delta
			return nil
		},
	}

	l := NewStockLedger(repo, true, zap.NewNop())
	require.NoError(t, l.ApplySaleLine(context.Background(), nil, domain.SalesOrderItem{ProductID: 2, Quantity: 7}))
	assert.Equal(t, -7, gotDelta)
}

func TestApplySaleLine_MissingProductStrict(t *testing.T) {
	repo := &mockProductRepository{
		AddStockFunc: func(ctx context.Context, tx *sql.Tx, id uint, delta int) error {
			return apperrors.NewNotFoundError("product with id 9 not found")
		},
	}

	l := NewStockLedger(repo, true, zap.NewNop())
	err := l.ApplySaleLine(context.Background(), nil, domain.SalesOrderItem{ProductID: 9, Quantity: 1})

	de, ok := apperrors.IsDanglingReferenceError(err)
	require.True(t, ok)
	assert.Equal(t, "product", de.Entity)
	assert.Equal(t, uint(9), de.ID)
}

func TestApplySaleLine_MissingProductLenient(t *testing.T) {
	repo := &mockProductRepository{
		AddStockFunc: func(ctx context.Context, tx *sql.Tx, id uint, delta int) error {
			return apperrors.NewNotFoundError("product with id 9 not found")
		},
	}
	before := testutil.ToFloat64(metrics.LedgerLinesSkippedTotal.WithLabelValues("product"))

	l := NewStockLedger(repo, false, zap.NewNop())
	err := l.ApplySaleLine(context.Background(), nil, domain.SalesOrderItem{ProductID: 9, Quantity: 1})

	assert.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.LedgerLinesSkippedTotal.WithLabelValues("product")))
}

func TestReversePurchaseLine_SkipsMissingProductEvenWhenStrict(t *testing.T) {
	var gotDelta int
	repo := &mockProductRepository{
		AddStockFunc: func(ctx context.Context, tx *sql.Tx, id uint, delta int) error {
			gotDelta = delta
			return apperrors.NewNotFoundError("gone")
		},
	}

	l := NewStockLedger(repo, true, zap.NewNop())
	err := l.ReversePurchaseLine(context.Background(), nil, domain.PurchaseOrderItem{ProductID: 4, Quantity: 5})

	assert.NoError(t, err)
	assert.Equal(t, -5, gotDelta)
}

func TestStockLedger_OtherErrorsPropagate(t *testing.T) {
	boom := errors.New("connection reset")
	repo := &mockProductRepository{
		AddStockAndPricesFunc: func(ctx context.Context, tx *sql.Tx, id uint, quantity int, purchasePrice, sellingPrice decimal.Decimal) error {
			return boom
		},
	}

	l := NewStockLedger(repo, false, zap.NewNop())
	err := l.ApplyPurchaseLine(context.Background(), nil, domain.PurchaseOrderItem{ProductID: 1, Quantity: 1})

	assert.ErrorIs(t, err, boom)
}

func TestApplySaleToCustomer_ComputesShortfall(t *testing.T) {
	tests := []struct {
		name          string
		total         string
		payment       string
		wantShortfall string
	}{
		{"partial payment", "1000", "400", "600"},
		{"paid in full", "1000", "1000", "0"},
		{"overpaid", "1000", "1200", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotShortfall, gotTotal decimal.Decimal
			calls := 0
			repo := &mockCustomerRepository{
				ApplySaleFunc: func(ctx context.Context, tx *sql.Tx, id uint, shortfall, total decimal.Decimal) error {
					calls++
					gotShortfall, gotTotal = shortfall, total
					return nil
				},
			}

			l := NewCustomerLedger(repo, true, zap.NewNop())
			err := l.ApplySaleToCustomer(context.Background(), nil, 3,
				decimal.RequireFromString(tt.total), decimal.RequireFromString(tt.payment))

			require.NoError(t, err)
			assert.Equal(t, 1, calls)
			assert.True(t, decimal.RequireFromString(tt.wantShortfall).Equal(gotShortfall), "shortfall %s", gotShortfall)
			assert.True(t, decimal.RequireFromString(tt.total).Equal(gotTotal))
		})
	}
}

func TestApplySaleToCustomer_MissingCustomer(t *testing.T) {
	repo := &mockCustomerRepository{
		ApplySaleFunc: func(ctx context.Context, tx *sql.Tx, id uint, shortfall, total decimal.Decimal) error {
			return apperrors.NewNotFoundError("customer with id 3 not found")
		},
	}

	strict := NewCustomerLedger(repo, true, zap.NewNop())
	err := strict.ApplySaleToCustomer(context.Background(), nil, 3, decimal.NewFromInt(10), decimal.Zero)
	de, ok := apperrors.IsDanglingReferenceError(err)
	require.True(t, ok)
	assert.Equal(t, "customer", de.Entity)

	lenient := NewCustomerLedger(repo, false, zap.NewNop())
	assert.NoError(t, lenient.ApplySaleToCustomer(context.Background(), nil, 3, decimal.NewFromInt(10), decimal.Zero))
}
