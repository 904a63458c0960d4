package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentMethodCash     = "cash"
	PaymentMethodTransfer = "transfer"
	PaymentMethodCard     = "card"
)

const (
	SalesStatusCompleted = "completed"
	SalesStatusPending   = "pending"
)

type SalesOrder struct {
	ID              uint
	Code            string
	Date            time.Time
	CustomerType    string
	CustomerID      *uint
	TotalAmount     decimal.Decimal
	CustomerPayment decimal.Decimal
	PaymentMethod   string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AffectsCustomer reports whether creating this order must touch the
// referenced customer's ledger.
func (o SalesOrder) AffectsCustomer() bool {
	return o.CustomerType == CustomerTypeRegular && o.CustomerID != nil
}

func (o SalesOrder) Shortfall() decimal.Decimal {
	return Shortfall(o.TotalAmount, o.CustomerPayment)
}

type SalesOrderItem struct {
	ID           uint
	SalesOrderID uint
	ProductID    uint
	Quantity     int
	Price        decimal.Decimal
	Amount       decimal.Decimal
}

func (i SalesOrderItem) ComputedAmount() decimal.Decimal {
	return LineAmount(i.Quantity, i.Price)
}

type SalesOrderWithItems struct {
	Order SalesOrder
	Items []SalesOrderItem
}
