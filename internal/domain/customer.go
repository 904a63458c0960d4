package domain

import "github.com/shopspring/decimal"

const (
	CustomerTypeAnonymous = "anonymous"
	CustomerTypeRegular   = "regular"
)

type Customer struct {
	ID            uint
	Code          string
	Name          string
	Phone         string
	Address       *string
	Email         *string
	CustomerType  string
	Debt          decimal.Decimal
	TotalPurchase decimal.Decimal
	Notes         *string
}
