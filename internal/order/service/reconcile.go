package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"salesdesk/internal/domain"
	"salesdesk/internal/errors"
)

// ReconcilePurchaseOrder recomputes every derived amount on a purchase order
// and rejects the request when a caller value differs from the server value
// by more than tolerance. The returned copies carry the server values.
func ReconcilePurchaseOrder(order domain.PurchaseOrder, items []domain.PurchaseOrderItem, tolerance decimal.Decimal) (domain.PurchaseOrder, []domain.PurchaseOrderItem, error) {
	if len(items) == 0 {
		return order, nil, errors.NewValidationError("validation failed", errors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	var details []errors.ValidationDetail
	reconciled := make([]domain.PurchaseOrderItem, len(items))
	total := decimal.Zero

	for i, item := range items {
		amount := item.ComputedAmount()
		if !domain.WithinTolerance(item.Amount, amount, tolerance) {
			details = append(details, mismatch(fmt.Sprintf("items[%d].amount", i), item.Amount, amount))
		}
		item.Amount = amount
		reconciled[i] = item
		total = total.Add(amount)
	}

	if !domain.WithinTolerance(order.TotalAmount, total, tolerance) {
		details = append(details, mismatch("order.totalAmount", order.TotalAmount, total))
	}
	order.TotalAmount = total

	debt := order.ComputedDebt()
	if !domain.WithinTolerance(order.Debt, debt, tolerance) {
		details = append(details, mismatch("order.debt", order.Debt, debt))
	}
	order.Debt = debt

	if len(details) > 0 {
		return order, nil, errors.NewValidationError("amounts do not add up", details...)
	}

	return order, reconciled, nil
}

// ReconcileSalesOrder is the sales counterpart of ReconcilePurchaseOrder.
func ReconcileSalesOrder(order domain.SalesOrder, items []domain.SalesOrderItem, tolerance decimal.Decimal) (domain.SalesOrder, []domain.SalesOrderItem, error) {
	if len(items) == 0 {
		return order, nil, errors.NewValidationError("validation failed", errors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	var details []errors.ValidationDetail
	reconciled := make([]domain.SalesOrderItem, len(items))
	total := decimal.Zero

	for i, item := range items {
		amount := item.ComputedAmount()
		if !domain.WithinTolerance(item.Amount, amount, tolerance) {
			details = append(details, mismatch(fmt.Sprintf("items[%d].amount", i), item.Amount, amount))
		}
		item.Amount = amount
		reconciled[i] = item
		total = total.Add(amount)
	}

	if !domain.WithinTolerance(order.TotalAmount, total, tolerance) {
		details = append(details, mismatch("order.totalAmount", order.TotalAmount, total))
	}
	order.TotalAmount = total

	if len(details) > 0 {
		return order, nil, errors.NewValidationError("amounts do not add up", details...)
	}

	return order, reconciled, nil
}

func mismatch(field string, got, want decimal.Decimal) errors.ValidationDetail {
	return errors.ValidationDetail{
		Field:   field,
		Message: fmt.Sprintf("got %s, expected %s", got.StringFixed(domain.MoneyPlaces), want.StringFixed(domain.MoneyPlaces)),
	}
}
