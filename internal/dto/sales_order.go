package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"salesdesk/internal/domain"
)

type SalesOrderHeaderRequest struct {
	Code            string          `json:"code" validate:"required,max=64"`
	Date            time.Time       `json:"date" validate:"required"`
	CustomerType    string          `json:"customerType" validate:"required,oneof=anonymous regular"`
	CustomerID      *uint           `json:"customerId" validate:"required_if=CustomerType regular,omitempty,gt=0"`
	TotalAmount     decimal.Decimal `json:"totalAmount" validate:"gte=0,money"`
	CustomerPayment decimal.Decimal `json:"customerPayment" validate:"gte=0,money"`
	PaymentMethod   string          `json:"paymentMethod" validate:"required,oneof=cash transfer card"`
	Status          string          `json:"status" validate:"required,oneof=completed pending"`
}

type SalesOrderItemRequest struct {
	ProductID uint            `json:"productId" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gte=1,lte=1000000"`
	Price     decimal.Decimal `json:"price" validate:"gte=0,money"`
	Amount    decimal.Decimal `json:"amount" validate:"gte=0,money"`
}

type CreateSalesOrderRequest struct {
	Order SalesOrderHeaderRequest `json:"order"`
	Items []SalesOrderItemRequest `json:"items" validate:"required,min=1,max=100,dive"`
}

func (r CreateSalesOrderRequest) ToDomain() (domain.SalesOrder, []domain.SalesOrderItem) {
	order := domain.SalesOrder{
		Code:            r.Order.Code,
		Date:            r.Order.Date.UTC(),
		CustomerType:    r.Order.CustomerType,
		CustomerID:      r.Order.CustomerID,
		TotalAmount:     r.Order.TotalAmount,
		CustomerPayment: r.Order.CustomerPayment,
		PaymentMethod:   r.Order.PaymentMethod,
		Status:          r.Order.Status,
	}

	items := make([]domain.SalesOrderItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = domain.SalesOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Amount:    item.Amount,
		}
	}

	return order, items
}

type SalesOrderResponse struct {
	ID              uint            `json:"id"`
	Code            string          `json:"code"`
	Date            time.Time       `json:"date"`
	CustomerType    string          `json:"customerType"`
	CustomerID      *uint           `json:"customerId"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	CustomerPayment decimal.Decimal `json:"customerPayment"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type SalesOrderItemResponse struct {
	ID           uint            `json:"id"`
	SalesOrderID uint            `json:"salesOrderId"`
	ProductID    uint            `json:"productId"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Amount       decimal.Decimal `json:"amount"`
}

type SalesOrderWithItemsResponse struct {
	Order SalesOrderResponse       `json:"order"`
	Items []SalesOrderItemResponse `json:"items"`
}

func NewSalesOrderResponse(o domain.SalesOrder) SalesOrderResponse {
	return SalesOrderResponse{
		ID:              o.ID,
		Code:            o.Code,
		Date:            o.Date,
		CustomerType:    o.CustomerType,
		CustomerID:      o.CustomerID,
		TotalAmount:     o.TotalAmount,
		CustomerPayment: o.CustomerPayment,
		PaymentMethod:   o.PaymentMethod,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func NewSalesOrderWithItemsResponse(o domain.SalesOrderWithItems) SalesOrderWithItemsResponse {
	items := make([]SalesOrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = SalesOrderItemResponse{
			ID:           item.ID,
			SalesOrderID: item.SalesOrderID,
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			Price:        item.Price,
			Amount:       item.Amount,
		}
	}

	return SalesOrderWithItemsResponse{
		Order: NewSalesOrderResponse(o.Order),
		Items: items,
	}
}
