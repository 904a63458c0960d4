package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PriceAdjustment struct {
	ID        uint
	ProductID uint
	OldPrice  decimal.Decimal
	NewPrice  decimal.Decimal
	Date      time.Time
	UserID    uint
}
