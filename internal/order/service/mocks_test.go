package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salesdesk/internal/domain"
)

// recordingTxManager hands out real sqlmock transactions and remembers the
// last one so tests can check every write used it.
type recordingTxManager struct {
	db    *sql.DB
	calls int
	tx    *sql.Tx
}

func (m *recordingTxManager) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	m.calls++
	tx, err := m.db.BeginTx(ctx, opts)
	m.tx = tx
	return tx, err
}

type mockPurchaseOrderRepository struct {
	InsertFunc            func(ctx context.Context, tx *sql.Tx, order domain.PurchaseOrder) (uint, error)
	FindByIDForUpdateFunc func(ctx context.Context, tx *sql.Tx, id uint) (*domain.PurchaseOrder, error)
	DeleteFunc            func(ctx context.Context, tx *sql.Tx, id uint) error
}

func (m *mockPurchaseOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.PurchaseOrder) (uint, error) {
	return m.InsertFunc(ctx, tx, order)
}

func (m *mockPurchaseOrderRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.PurchaseOrder, error) {
	return m.FindByIDForUpdateFunc(ctx, tx, id)
}

func (m *mockPurchaseOrderRepository) Delete(ctx context.Context, tx *sql.Tx, id uint) error {
	return m.DeleteFunc(ctx, tx, id)
}

type mockPurchaseOrderItemRepository struct {
	InsertFunc          func(ctx context.Context, tx *sql.Tx, item domain.PurchaseOrderItem) (uint, error)
	FindByOrderIDTxFunc func(ctx context.Context, tx *sql.Tx, orderID uint) ([]domain.PurchaseOrderItem, error)
	DeleteByOrderIDFunc func(ctx context.Context, tx *sql.Tx, orderID uint) error
}

func (m *mockPurchaseOrderItemRepository) Insert(ctx context.Context, tx *sql.Tx, item domain.PurchaseOrderItem) (uint, error) {
	return m.InsertFunc(ctx, tx, item)
}

func (m *mockPurchaseOrderItemRepository) FindByOrderIDTx(ctx context.Context, tx *sql.Tx, orderID uint) ([]domain.PurchaseOrderItem, error) {
	return m.FindByOrderIDTxFunc(ctx, tx, orderID)
}

func (m *mockPurchaseOrderItemRepository) DeleteByOrderID(ctx context.Context, tx *sql.Tx, orderID uint) error {
	return m.DeleteByOrderIDFunc(ctx, tx, orderID)
}

type mockSalesOrderRepository struct {
	InsertFunc func(ctx context.Context, tx *sql.Tx, order domain.SalesOrder) (uint, error)
}

func (m *mockSalesOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.SalesOrder) (uint, error) {
	return m.InsertFunc(ctx, tx, order)
}

type mockSalesOrderItemRepository struct {
	InsertFunc func(ctx context.Context, tx *sql.Tx, item domain.SalesOrderItem) (uint, error)
}

func (m *mockSalesOrderItemRepository) Insert(ctx context.Context, tx *sql.Tx, item domain.SalesOrderItem) (uint, error) {
	return m.InsertFunc(ctx, tx, item)
}

type mockStockLedger struct {
	ApplyPurchaseLineFunc   func(ctx context.Context, tx *sql.Tx, item domain.PurchaseOrderItem) error
	ApplySaleLineFunc       func(ctx context.Context, tx *sql.Tx, item domain.SalesOrderItem) error
	ReversePurchaseLineFunc func(ctx context.Context, tx *sql.Tx, item domain.PurchaseOrderItem) error
}

func (m *mockStockLedger) ApplyPurchaseLine(ctx context.Context, tx *sql.Tx, item domain.PurchaseOrderItem) error {
	return m.ApplyPurchaseLineFunc(ctx, tx, item)
}

func (m *mockStockLedger) ApplySaleLine(ctx context.Context, tx *sql.Tx, item domain.SalesOrderItem) error {
	return m.ApplySaleLineFunc(ctx, tx, item)
}

func (m *mockStockLedger) ReversePurchaseLine(ctx context.Context, tx *sql.Tx, item domain.PurchaseOrderItem) error {
	return m.ReversePurchaseLineFunc(ctx, tx, item)
}

type mockCustomerLedger struct {
	ApplySaleToCustomerFunc func(ctx context.Context, tx *sql.Tx, customerID uint, total, payment decimal.Decimal) error
}

func (m *mockCustomerLedger) ApplySaleToCustomer(ctx context.Context, tx *sql.Tx, customerID uint, total, payment decimal.Decimal) error {
	return m.ApplySaleToCustomerFunc(ctx, tx, customerID, total, payment)
}

var fixedNow = time.Date(2026, 4, 10, 9, 30, 0, 0, time.UTC)

func newTestCoordinator(t *testing.T, repos Repositories, stock StockLedger, customers CustomerLedger) (*OrderCoordinator, *recordingTxManager, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	txm := &recordingTxManager{db: db}
	c := NewOrderCoordinator(txm, repos, stock, customers, zap.NewNop(), 5*time.Second, decimal.RequireFromString("0.01"))
	c.now = func() time.Time { return fixedNow }

	return c, txm, mock
}

func uintPtr(v uint) *uint {
	return &v
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
