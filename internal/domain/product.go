package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID            uint
	Code          string
	Name          string
	CategoryID    *uint
	Unit          string
	PurchasePrice decimal.Decimal
	SellingPrice  decimal.Decimal
	Stock         int
	Notes         *string
}

// ProductFilter narrows product listings. Zero values mean no filter.
type ProductFilter struct {
	CategoryID *uint
	Search     string
}
