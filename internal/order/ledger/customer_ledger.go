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

type CustomerRepository interface {
	ApplySale(ctx context.Context, tx *sql.Tx, id uint, shortfall, total decimal.Decimal) error
}

// CustomerLedger books a sale against a regular customer's debt and lifetime
// purchase total. It is not idempotent; callers apply it once per order.
type CustomerLedger struct {
	customers CustomerRepository
	strict    bool
	logger    *zap.Logger
}

func NewCustomerLedger(customers CustomerRepository, strict bool, logger *zap.Logger) *CustomerLedger {
	return &CustomerLedger{
		customers: customers,
		strict:    strict,
		logger:    logger,
	}
}

// ApplySaleToCustomer adds max(0, total-payment) to debt and total to the
// purchase total.
func (l *CustomerLedger) ApplySaleToCustomer(ctx context.Context, tx *sql.Tx, customerID uint, total, payment decimal.Decimal) error {
	err := l.customers.ApplySale(ctx, tx, customerID, domain.Shortfall(total, payment), total)
	if err == nil {
		return nil
	}
	if _, ok := errors.IsNotFoundError(err); !ok {
		return err
	}
	if l.strict {
		return errors.NewDanglingReferenceError(entityCustomer, customerID)
	}

	metrics.LedgerLinesSkippedTotal.WithLabelValues(entityCustomer).Inc()
	l.logger.Warn("customer not found, sale not booked", zap.Uint("customerId", customerID))
	return nil
}
