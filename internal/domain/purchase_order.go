package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PurchaseOrder struct {
	ID          uint
	Code        string
	Date        time.Time
	SupplierID  *uint
	Documents   *string
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	Debt        decimal.Decimal
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ComputedDebt is what the supplier is still owed for this order.
func (o PurchaseOrder) ComputedDebt() decimal.Decimal {
	return o.TotalAmount.Sub(o.PaidAmount)
}

type PurchaseOrderItem struct {
	ID              uint
	PurchaseOrderID uint
	ProductID       uint
	Quantity        int
	PurchasePrice   decimal.Decimal
	SellingPrice    decimal.Decimal
	Amount          decimal.Decimal
}

func (i PurchaseOrderItem) ComputedAmount() decimal.Decimal {
	return LineAmount(i.Quantity, i.PurchasePrice)
}

type PurchaseOrderWithItems struct {
	Order PurchaseOrder
	Items []PurchaseOrderItem
}
