package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint {
	return &v
}

func TestSalesOrder_AffectsCustomer(t *testing.T) {
	tests := []struct {
		name  string
		order SalesOrder
		want  bool
	}{
		{"regular with customer", SalesOrder{CustomerType: CustomerTypeRegular, CustomerID: uintPtr(3)}, true},
		{"regular without customer", SalesOrder{CustomerType: CustomerTypeRegular}, false},
		{"anonymous with customer", SalesOrder{CustomerType: CustomerTypeAnonymous, CustomerID: uintPtr(3)}, false},
		{"anonymous", SalesOrder{CustomerType: CustomerTypeAnonymous}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.order.AffectsCustomer())
		})
	}
}

func TestSalesOrder_Shortfall(t *testing.T) {
	order := SalesOrder{
		TotalAmount:     decimal.NewFromInt(1000),
		CustomerPayment: decimal.NewFromInt(400),
	}

	assert.True(t, decimal.NewFromInt(600).Equal(order.Shortfall()))
}

func TestPurchaseOrder_ComputedDebt(t *testing.T) {
	order := PurchaseOrder{
		TotalAmount: decimal.NewFromInt(500),
		PaidAmount:  decimal.NewFromInt(200),
	}

	assert.True(t, decimal.NewFromInt(300).Equal(order.ComputedDebt()))
}

func TestOrderItems_ComputedAmount(t *testing.T) {
	purchase := PurchaseOrderItem{Quantity: 5, PurchasePrice: decimal.NewFromInt(10)}
	sale := SalesOrderItem{Quantity: 2, Price: decimal.RequireFromString("7.25")}

	assert.True(t, decimal.NewFromInt(50).Equal(purchase.ComputedAmount()))
	assert.True(t, decimal.RequireFromString("14.5").Equal(sale.ComputedAmount()))
}
