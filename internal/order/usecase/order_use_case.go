package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"salesdesk/internal/domain"
	apperrors "salesdesk/internal/errors"
	"salesdesk/internal/infrastructure/metrics"
	mysqlinfra "salesdesk/internal/infrastructure/mysql"
)

type OrderCoordinator interface {
	CreatePurchaseOrder(ctx context.Context, order domain.PurchaseOrder, items []domain.PurchaseOrderItem) (*domain.PurchaseOrderWithItems, error)
	CreateSalesOrder(ctx context.Context, order domain.SalesOrder, items []domain.SalesOrderItem) (*domain.SalesOrderWithItems, error)
	DeletePurchaseOrder(ctx context.Context, id uint) error
}

type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.PurchaseOrder, error)
	List(ctx context.Context) ([]domain.PurchaseOrder, error)
}

type PurchaseOrderItemRepository interface {
	FindByOrderID(ctx context.Context, orderID uint) ([]domain.PurchaseOrderItem, error)
}

type SalesOrderRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.SalesOrder, error)
	List(ctx context.Context) ([]domain.SalesOrder, error)
}

type SalesOrderItemRepository interface {
	FindByOrderID(ctx context.Context, orderID uint) ([]domain.SalesOrderItem, error)
}

type OrderUseCase struct {
	coordinator        OrderCoordinator
	purchaseOrders     PurchaseOrderRepository
	purchaseOrderItems PurchaseOrderItemRepository
	salesOrders        SalesOrderRepository
	salesOrderItems    SalesOrderItemRepository
	logger             *zap.Logger
	maxRetryAttempts   int
	backoff            func(attempt int) time.Duration
}

func NewOrderUseCase(
	coordinator OrderCoordinator,
	purchaseOrders PurchaseOrderRepository,
	purchaseOrderItems PurchaseOrderItemRepository,
	salesOrders SalesOrderRepository,
	salesOrderItems SalesOrderItemRepository,
	logger *zap.Logger,
	maxRetryAttempts int,
) *OrderUseCase {
	return &OrderUseCase{
		coordinator:        coordinator,
		purchaseOrders:     purchaseOrders,
		purchaseOrderItems: purchaseOrderItems,
		salesOrders:        salesOrders,
		salesOrderItems:    salesOrderItems,
		logger:             logger,
		maxRetryAttempts:   maxRetryAttempts,
		backoff:            jitteredBackoff,
	}
}

// jitteredBackoff waits 100ms per failed attempt plus up to 20% jitter.
func jitteredBackoff(attempt int) time.Duration {
	base := time.Duration(attempt) * 100 * time.Millisecond
	return base + time.Duration(rand.Int63n(int64(base/5+1)))
}

func (uc *OrderUseCase) CreatePurchaseOrder(ctx context.Context, order domain.PurchaseOrder, items []domain.PurchaseOrderItem) (*domain.PurchaseOrderWithItems, error) {
	uc.logger.Info("create purchase order started", zap.String("code", order.Code), zap.Int("itemCount", len(items)))

	return withRetry(ctx, uc, "create_purchase_order", func(ctx context.Context) (*domain.PurchaseOrderWithItems, error) {
		return uc.coordinator.CreatePurchaseOrder(ctx, order, items)
	})
}

func (uc *OrderUseCase) CreateSalesOrder(ctx context.Context, order domain.SalesOrder, items []domain.SalesOrderItem) (*domain.SalesOrderWithItems, error) {
	uc.logger.Info("create sales order started", zap.String("code", order.Code), zap.Int("itemCount", len(items)))

	return withRetry(ctx, uc, "create_sales_order", func(ctx context.Context) (*domain.SalesOrderWithItems, error) {
		return uc.coordinator.CreateSalesOrder(ctx, order, items)
	})
}

func (uc *OrderUseCase) DeletePurchaseOrder(ctx context.Context, id uint) error {
	uc.logger.Info("delete purchase order started", zap.Uint("orderId", id))

	_, err := withRetry(ctx, uc, "delete_purchase_order", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, uc.coordinator.DeletePurchaseOrder(ctx, id)
	})
	return err
}

func (uc *OrderUseCase) GetPurchaseOrder(ctx context.Context, id uint) (*domain.PurchaseOrderWithItems, error) {
	order, err := uc.purchaseOrders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := uc.purchaseOrderItems.FindByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.PurchaseOrderWithItems{Order: *order, Items: items}, nil
}

func (uc *OrderUseCase) ListPurchaseOrders(ctx context.Context) ([]domain.PurchaseOrder, error) {
	return uc.purchaseOrders.List(ctx)
}

func (uc *OrderUseCase) GetSalesOrder(ctx context.Context, id uint) (*domain.SalesOrderWithItems, error) {
	order, err := uc.salesOrders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := uc.salesOrderItems.FindByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.SalesOrderWithItems{Order: *order, Items: items}, nil
}

func (uc *OrderUseCase) ListSalesOrders(ctx context.Context) ([]domain.SalesOrder, error) {
	return uc.salesOrders.List(ctx)
}

// withRetry reruns fn while it fails with a deadlock or lock wait timeout.
// Every attempt is a fresh transaction, so a retried order is still booked
// once.
func withRetry[T any](ctx context.Context, uc *OrderUseCase, operation string, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	for attempt := 1; attempt <= uc.maxRetryAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}

		if !mysqlinfra.IsDeadlock(err) {
			return zero, err
		}

		if attempt == uc.maxRetryAttempts {
			uc.logger.Error("deadlock retries exhausted", zap.String("operation", operation), zap.Int("attempts", attempt), zap.Error(err))
			break
		}

		metrics.TxRetriesTotal.WithLabelValues(operation).Inc()
		uc.logger.Warn("deadlock detected, retrying",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", uc.maxRetryAttempts))

		if err := sleep(ctx, uc.backoff(attempt)); err != nil {
			return zero, err
		}
	}

	return zero, apperrors.NewDeadlockError(fmt.Sprintf("%s: gave up after %d attempts", operation, uc.maxRetryAttempts))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
