package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"salesdesk/internal/domain"
)

type PurchaseOrderHeaderRequest struct {
	Code        string          `json:"code" validate:"required,max=64"`
	Date        time.Time       `json:"date" validate:"required"`
	SupplierID  *uint           `json:"supplierId" validate:"omitempty,gt=0"`
	Documents   *string         `json:"documents"`
	TotalAmount decimal.Decimal `json:"totalAmount" validate:"gte=0,money"`
	PaidAmount  decimal.Decimal `json:"paidAmount" validate:"gte=0,money"`
	Debt        decimal.Decimal `json:"debt" validate:"money"`
	Notes       *string         `json:"notes"`
}

type PurchaseOrderItemRequest struct {
	ProductID     uint            `json:"productId" validate:"required"`
	Quantity      int             `json:"quantity" validate:"gte=1,lte=1000000"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" validate:"gte=0,money"`
	SellingPrice  decimal.Decimal `json:"sellingPrice" validate:"gte=0,money"`
	Amount        decimal.Decimal `json:"amount" validate:"gte=0,money"`
}

type CreatePurchaseOrderRequest struct {
	Order PurchaseOrderHeaderRequest `json:"order"`
	Items []PurchaseOrderItemRequest `json:"items" validate:"required,min=1,max=100,dive"`
}

func (r CreatePurchaseOrderRequest) ToDomain() (domain.PurchaseOrder, []domain.PurchaseOrderItem) {
	order := domain.PurchaseOrder{
		Code:        r.Order.Code,
		Date:        r.Order.Date.UTC(),
		SupplierID:  r.Order.SupplierID,
		Documents:   r.Order.Documents,
		TotalAmount: r.Order.TotalAmount,
		PaidAmount:  r.Order.PaidAmount,
		Debt:        r.Order.Debt,
		Notes:       r.Order.Notes,
	}

	items := make([]domain.PurchaseOrderItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = domain.PurchaseOrderItem{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			PurchasePrice: item.PurchasePrice,
			SellingPrice:  item.SellingPrice,
			Amount:        item.Amount,
		}
	}

	return order, items
}

type PurchaseOrderResponse struct {
	ID          uint            `json:"id"`
	Code        string          `json:"code"`
	Date        time.Time       `json:"date"`
	SupplierID  *uint           `json:"supplierId"`
	Documents   *string         `json:"documents"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	Debt        decimal.Decimal `json:"debt"`
	Notes       *string         `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type PurchaseOrderItemResponse struct {
	ID              uint            `json:"id"`
	PurchaseOrderID uint            `json:"purchaseOrderId"`
	ProductID       uint            `json:"productId"`
	Quantity        int             `json:"quantity"`
	PurchasePrice   decimal.Decimal `json:"purchasePrice"`
	SellingPrice    decimal.Decimal `json:"sellingPrice"`
	Amount          decimal.Decimal `json:"amount"`
}

type PurchaseOrderWithItemsResponse struct {
	Order PurchaseOrderResponse       `json:"order"`
	Items []PurchaseOrderItemResponse `json:"items"`
}

func NewPurchaseOrderResponse(o domain.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		ID:          o.ID,
		Code:        o.Code,
		Date:        o.Date,
		SupplierID:  o.SupplierID,
		Documents:   o.Documents,
		TotalAmount: o.TotalAmount,
		PaidAmount:  o.PaidAmount,
		Debt:        o.Debt,
		Notes:       o.Notes,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func NewPurchaseOrderWithItemsResponse(o domain.PurchaseOrderWithItems) PurchaseOrderWithItemsResponse {
	items := make([]PurchaseOrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = PurchaseOrderItemResponse{
			ID:              item.ID,
			PurchaseOrderID: item.PurchaseOrderID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PurchasePrice:   item.PurchasePrice,
			SellingPrice:    item.SellingPrice,
			Amount:          item.Amount,
		}
	}

	return PurchaseOrderWithItemsResponse{
		Order: NewPurchaseOrderResponse(o.Order),
		Items: items,
	}
}
