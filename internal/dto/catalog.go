package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"salesdesk/internal/domain"
)

type CategoryRequest struct {
	Code  string  `json:"code" validate:"required,max=64"`
	Name  string  `json:"name" validate:"required,max=255"`
	Notes *string `json:"notes"`
}

func (r CategoryRequest) ToDomain(id uint) domain.ProductCategory {
	return domain.ProductCategory{
		ID:    id,
		Code:  r.Code,
		Name:  r.Name,
		Notes: r.Notes,
	}
}

type CategoryResponse struct {
	ID    uint    `json:"id"`
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Notes *string `json:"notes"`
}

func NewCategoryResponse(c domain.ProductCategory) CategoryResponse {
	return CategoryResponse(c)
}

type ProductRequest struct {
	Code          string          `json:"code" validate:"required,max=64"`
	Name          string          `json:"name" validate:"required,max=255"`
	CategoryID    *uint           `json:"categoryId" validate:"omitempty,gt=0"`
	Unit          string          `json:"unit" validate:"required,max=32"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" validate:"gte=0,money"`
	SellingPrice  decimal.Decimal `json:"sellingPrice" validate:"gte=0,money"`
	Stock         int             `json:"stock"`
	Notes         *string         `json:"notes"`
}

// ToDomain maps the request. Stock is only honoured on create.
func (r ProductRequest) ToDomain(id uint) domain.Product {
	return domain.Product{
		ID:            id,
		Code:          r.Code,
		Name:          r.Name,
		CategoryID:    r.CategoryID,
		Unit:          r.Unit,
		PurchasePrice: r.PurchasePrice,
		SellingPrice:  r.SellingPrice,
		Stock:         r.Stock,
		Notes:         r.Notes,
	}
}

type ProductResponse struct {
	ID            uint            `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	CategoryID    *uint           `json:"categoryId"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	Stock         int             `json:"stock"`
	Notes         *string         `json:"notes"`
}

func NewProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		CategoryID:    p.CategoryID,
		Unit:          p.Unit,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		Stock:         p.Stock,
		Notes:         p.Notes,
	}
}

type SupplierRequest struct {
	Code          string  `json:"code" validate:"required,max=64"`
	Name          string  `json:"name" validate:"required,max=255"`
	Phone         *string `json:"phone" validate:"omitempty,max=32"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contactPerson"`
	Notes         *string `json:"notes"`
}

func (r SupplierRequest) ToDomain(id uint) domain.Supplier {
	return domain.Supplier{
		ID:            id,
		Code:          r.Code,
		Name:          r.Name,
		Phone:         r.Phone,
		Address:       r.Address,
		ContactPerson: r.ContactPerson,
		Notes:         r.Notes,
	}
}

type SupplierResponse struct {
	ID            uint    `json:"id"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contactPerson"`
	Notes         *string `json:"notes"`
}

func NewSupplierResponse(s domain.Supplier) SupplierResponse {
	return SupplierResponse(s)
}

type CustomerRequest struct {
	Code          string          `json:"code" validate:"required,max=64"`
	Name          string          `json:"name" validate:"required,max=255"`
	Phone         string          `json:"phone" validate:"required,max=32"`
	Address       *string         `json:"address"`
	Email         *string         `json:"email" validate:"omitempty,email"`
	CustomerType  string          `json:"customerType" validate:"omitempty,oneof=anonymous regular"`
	Debt          decimal.Decimal `json:"debt" validate:"money"`
	TotalPurchase decimal.Decimal `json:"totalPurchase" validate:"gte=0,money"`
	Notes         *string         `json:"notes"`
}

// ToDomain maps the request. Debt and total purchase are opening balances and
// only honoured on create.
func (r CustomerRequest) ToDomain(id uint) domain.Customer {
	customerType := r.CustomerType
	if customerType == "" {
		customerType = domain.CustomerTypeRegular
	}

	return domain.Customer{
		ID:            id,
		Code:          r.Code,
		Name:          r.Name,
		Phone:         r.Phone,
		Address:       r.Address,
		Email:         r.Email,
		CustomerType:  customerType,
		Debt:          r.Debt,
		TotalPurchase: r.TotalPurchase,
		Notes:         r.Notes,
	}
}

type CustomerResponse struct {
	ID            uint            `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Address       *string         `json:"address"`
	Email         *string         `json:"email"`
	CustomerType  string          `json:"customerType"`
	Debt          decimal.Decimal `json:"debt"`
	TotalPurchase decimal.Decimal `json:"totalPurchase"`
	Notes         *string         `json:"notes"`
}

func NewCustomerResponse(c domain.Customer) CustomerResponse {
	return CustomerResponse(c)
}

type PriceAdjustmentRequest struct {
	ProductID uint            `json:"productId" validate:"required"`
	NewPrice  decimal.Decimal `json:"newPrice" validate:"gte=0,money"`
	UserID    uint            `json:"userId" validate:"required"`
	Date      *time.Time      `json:"date"`
}

type PriceAdjustmentResponse struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"productId"`
	OldPrice  decimal.Decimal `json:"oldPrice"`
	NewPrice  decimal.Decimal `json:"newPrice"`
	Date      time.Time       `json:"date"`
	UserID    uint            `json:"userId"`
}

func NewPriceAdjustmentResponse(a domain.PriceAdjustment) PriceAdjustmentResponse {
	return PriceAdjustmentResponse(a)
}
