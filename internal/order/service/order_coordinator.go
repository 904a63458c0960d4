package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"salesdesk/internal/domain"
	apperrors "salesdesk/internal/errors"
	"salesdesk/internal/infrastructure/metrics"
	"salesdesk/internal/infrastructure/tracing"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type PurchaseOrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.PurchaseOrder) (uint, error)
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.PurchaseOrder, error)
	Delete(ctx context.Context, tx *sql.Tx, id uint) error
}

type PurchaseOrderItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.PurchaseOrderItem) (uint, error)
	FindByOrderIDTx(ctx context.Context, tx *sql.Tx, orderID uint) ([]domain.PurchaseOrderItem, error)
	DeleteByOrderID(ctx context.Context, tx *sql.Tx, orderID uint) error
}

type SalesOrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.SalesOrder) (uint, error)
}

type SalesOrderItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.SalesOrderItem) (uint, error)
}

type StockLedger interface {
	ApplyPurchaseLine(ctx context.Context, tx *sql.Tx, item domain.PurchaseOrderItem) error
	ApplySaleLine(ctx context.Context, tx *sql.Tx, item domain.SalesOrderItem) error
	ReversePurchaseLine(ctx context.Context, tx *sql.Tx, item domain.PurchaseOrderItem) error
}

type CustomerLedger interface {
	ApplySaleToCustomer(ctx context.Context, tx *sql.Tx, customerID uint, total, payment decimal.Decimal) error
}

type Repositories struct {
	PurchaseOrders     PurchaseOrderRepository
	PurchaseOrderItems PurchaseOrderItemRepository
	SalesOrders        SalesOrderRepository
	SalesOrderItems    SalesOrderItemRepository
}

// OrderCoordinator runs each order operation as one transaction: the header,
// every line and every ledger effect commit together or not at all.
type OrderCoordinator struct {
	db        TransactionManager
	repos     Repositories
	stock     StockLedger
	customers CustomerLedger
	logger    *zap.Logger
	txTimeout time.Duration
	tolerance decimal.Decimal
	now       func() time.Time
}

func NewOrderCoordinator(
	db TransactionManager,
	repos Repositories,
	stock StockLedger,
	customers CustomerLedger,
	logger *zap.Logger,
	txTimeout time.Duration,
	tolerance decimal.Decimal,
) *OrderCoordinator {
	return &OrderCoordinator{
		db:        db,
		repos:     repos,
		stock:     stock,
		customers: customers,
		logger:    logger,
		txTimeout: txTimeout,
		tolerance: tolerance,
		now:       time.Now,
	}
}

// orderRun follows one request through the creation state machine.
type orderRun struct {
	kind   string
	state  domain.OrderState
	start  time.Time
	logger *zap.Logger
	span   trace.Span
}

func (c *OrderCoordinator) begin(ctx context.Context, kind, operation, code string) (context.Context, *orderRun) {
	ctx, span := tracing.StartSpan(ctx, "OrderCoordinator."+operation,
		trace.WithAttributes(attribute.String("order.kind", kind), attribute.String("order.code", code)))

	return ctx, &orderRun{
		kind:   kind,
		state:  domain.OrderStateReceived,
		start:  time.Now(),
		logger: c.logger.With(zap.String("kind", kind), zap.String("operation", operation), zap.String("code", code)),
		span:   span,
	}
}

func (r *orderRun) advance(state domain.OrderState) {
	r.logger.Debug("order state", zap.String("from", string(r.state)), zap.String("to", string(state)))
	r.state = state
}

// finish records the outcome. A non-nil err moves the run to Aborted.
func (r *orderRun) finish(operation string, err error) {
	metrics.ObserveOrderTx(r.kind, operation, r.start)
	tracing.Finish(r.span, err)

	if err != nil {
		r.logger.Error("order aborted", zap.String("state", string(r.state)), zap.Error(err))
		r.state = domain.OrderStateAborted
		metrics.OrdersFailedTotal.WithLabelValues(r.kind, apperrors.Code(err)).Inc()
		return
	}
	r.advance(domain.OrderStateCommitted)
}

// CreatePurchaseOrder persists the header and lines and applies every line to
// stock and prices, in caller order.
func (c *OrderCoordinator) CreatePurchaseOrder(ctx context.Context, order domain.PurchaseOrder, items []domain.PurchaseOrderItem) (result *domain.PurchaseOrderWithItems, err error) {
	ctx, run := c.begin(ctx, metrics.KindPurchase, "create", order.Code)
	defer func() { run.finish("create", err) }()

	order, items, err = ReconcilePurchaseOrder(order, items, c.tolerance)
	if err != nil {
		return nil, err
	}
	run.advance(domain.OrderStateValidated)

	now := c.now().UTC()
	order.CreatedAt, order.UpdatedAt = now, now

	err = c.inTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		id, err := c.repos.PurchaseOrders.Insert(ctx, tx, order)
		if err != nil {
			return err
		}
		order.ID = id
		run.advance(domain.OrderStateHeaderPersisted)

		persisted := make([]domain.PurchaseOrderItem, 0, len(items))
		for i, item := range items {
			item.PurchaseOrderID = id
			itemID, err := c.repos.PurchaseOrderItems.Insert(ctx, tx, item)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			item.ID = itemID

			if err := c.stock.ApplyPurchaseLine(ctx, tx, item); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			run.logger.Debug("purchase line applied",
				zap.Uint("productId", item.ProductID), zap.Int("quantity", item.Quantity))
			persisted = append(persisted, item)
		}
		run.advance(domain.OrderStateItemsPersisted)
		run.advance(domain.OrderStateLedgerApplied)

		result = &domain.PurchaseOrderWithItems{Order: order, Items: persisted}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.WithLabelValues(metrics.KindPurchase).Inc()
	run.logger.Info("purchase order committed",
		zap.Uint("orderId", result.Order.ID),
		zap.Int("itemCount", len(result.Items)),
		zap.String("totalAmount", result.Order.TotalAmount.StringFixed(domain.MoneyPlaces)))

	return result, nil
}

// CreateSalesOrder persists the header and lines, takes every line out of
// stock and, for a regular customer, books the sale once.
func (c *OrderCoordinator) CreateSalesOrder(ctx context.Context, order domain.SalesOrder, items []domain.SalesOrderItem) (result *domain.SalesOrderWithItems, err error) {
	ctx, run := c.begin(ctx, metrics.KindSales, "create", order.Code)
	defer func() { run.finish("create", err) }()

	order, items, err = ReconcileSalesOrder(order, items, c.tolerance)
	if err != nil {
		return nil, err
	}
	run.advance(domain.OrderStateValidated)

	now := c.now().UTC()
	order.CreatedAt, order.UpdatedAt = now, now

	err = c.inTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		id, err := c.repos.SalesOrders.Insert(ctx, tx, order)
		if err != nil {
			return err
		}
		order.ID = id
		run.advance(domain.OrderStateHeaderPersisted)

		persisted := make([]domain.SalesOrderItem, 0, len(items))
		for i, item := range items {
			item.SalesOrderID = id
			itemID, err := c.repos.SalesOrderItems.Insert(ctx, tx, item)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			item.ID = itemID

			if err := c.stock.ApplySaleLine(ctx, tx, item); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			run.logger.Debug("sale line applied",
				zap.Uint("productId", item.ProductID), zap.Int("quantity", item.Quantity))
			persisted = append(persisted, item)
		}
		run.advance(domain.OrderStateItemsPersisted)

		if order.AffectsCustomer() {
			if err := c.customers.ApplySaleToCustomer(ctx, tx, *order.CustomerID, order.TotalAmount, order.CustomerPayment); err != nil {
				return err
			}
		}
		run.advance(domain.OrderStateLedgerApplied)

		result = &domain.SalesOrderWithItems{Order: order, Items: persisted}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.WithLabelValues(metrics.KindSales).Inc()
	run.logger.Info("sales order committed",
		zap.Uint("orderId", result.Order.ID),
		zap.Int("itemCount", len(result.Items)),
		zap.Bool("customerBooked", order.AffectsCustomer()))

	return result, nil
}

// DeletePurchaseOrder takes the order's stock back out and removes its lines
// and header. Prices set by the order stay as they are.
func (c *OrderCoordinator) DeletePurchaseOrder(ctx context.Context, id uint) (err error) {
	ctx, run := c.begin(ctx, metrics.KindPurchase, "delete", fmt.Sprintf("id:%d", id))
	defer func() { run.finish("delete", err) }()

	err = c.inTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := c.repos.PurchaseOrders.FindByIDForUpdate(ctx, tx, id); err != nil {
			return err
		}

		items, err := c.repos.PurchaseOrderItems.FindByOrderIDTx(ctx, tx, id)
		if err != nil {
			return err
		}

		for _, item := range items {
			if err := c.stock.ReversePurchaseLine(ctx, tx, item); err != nil {
				return err
			}
		}

		if err := c.repos.PurchaseOrderItems.DeleteByOrderID(ctx, tx, id); err != nil {
			return err
		}
		return c.repos.PurchaseOrders.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	metrics.PurchaseOrdersDeletedTotal.Inc()
	run.logger.Info("purchase order deleted", zap.Uint("orderId", id))
	return nil
}

func (c *OrderCoordinator) inTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	txCtx, cancel := context.WithTimeout(ctx, c.txTimeout)
	defer cancel()

	tx, err := c.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	// No-op once committed.
	defer tx.Rollback()

	if err := fn(txCtx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
