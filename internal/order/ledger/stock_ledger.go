package ledger

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"salesdesk/internal/domain"
	"salesdesk/internal/errors"
	"salesdesk/internal/infrastructure/metrics"
)

const (
	entityProduct  = "product"
	entityCustomer = "customer"
)

type ProductRepository interface {
	AddStockAndPrices(ctx context.Context, tx *sql.Tx, id uint, quantity int, purchasePrice, sellingPrice decimal.Decimal) error
	AddStock(ctx context.Context, tx *sql.Tx, id uint, delta int) error
}

// StockLedger applies order lines to product stock and prices. Every write
// goes through the caller's transaction.
type StockLedger struct {
	products ProductRepository
	strict   bool
	logger   *zap.Logger
}

// NewStockLedger returns a ledger that aborts on a missing product when
// strict is set, and otherwise logs and skips the line.
func NewStockLedger(products ProductRepository, strict bool, logger *zap.Logger) *StockLedger {
	return &StockLedger{
		products: products,
		strict:   strict,
		logger:   logger,
	}
}

// ApplyPurchaseLine adds the received quantity and overwrites both prices
// with the ones on the line.
func (l *StockLedger) ApplyPurchaseLine(ctx context.Context, tx *sql.Tx, item domain.PurchaseOrderItem) error {
	err := l.products.AddStockAndPrices(ctx, tx, item.ProductID, item.Quantity, item.PurchasePrice, item.SellingPrice)
	return l.missing(err, item.ProductID, l.strict, "purchase line")
}

// ApplySaleLine removes the sold quantity. Stock may go negative.
func (l *StockLedger) ApplySaleLine(ctx context.Context, tx *sql.Tx, item domain.SalesOrderItem) error {
	err := l.products.AddStock(ctx, tx, item.ProductID, -item.Quantity)
	return l.missing(err, item.ProductID, l.strict, "sale line")
}

// ReversePurchaseLine takes back the stock a purchase line added. Prices are
// not restored. A product deleted since the purchase is skipped even in
// strict mode, otherwise the order could never be removed.
func (l *StockLedger) ReversePurchaseLine(ctx context.Context, tx *sql.Tx, item domain.PurchaseOrderItem) error {
	err := l.products.AddStock(ctx, tx, item.ProductID, -item.Quantity)
	return l.missing(err, item.ProductID, false, "purchase reversal")
}

func (l *StockLedger) missing(err error, productID uint, strict bool, line string) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.IsNotFoundError(err); !ok {
		return err
	}
	if strict {
		return errors.NewDanglingReferenceError(entityProduct, productID)
	}

	metrics.LedgerLinesSkippedTotal.WithLabelValues(entityProduct).Inc()
	l.logger.Warn("product not found, ledger line skipped",
		zap.String("line", line),
		zap.Uint("productId", productID),
	)
	return nil
}
