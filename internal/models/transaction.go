package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single dated money movement attributed to a category.
// Negative amounts are income, non-negative amounts are expenses.
type Transaction struct {
	Base
	Date         time.Time       `gorm:"type:date;not null;index" json:"date"`
	Amount       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Tags         string          `gorm:"size:200" json:"tags"`
	Notes        string          `gorm:"size:200" json:"notes"`
	CategoryName string          `gorm:"size:200;not null;index" json:"category"`
}

// IsIncome reports whether the transaction is money coming in.
func (t *Transaction) IsIncome() bool {
	return t.Amount.IsNegative()
}

// DateOf truncates t to a UTC calendar date at midnight. All stored dates
// go through it so that range comparisons work on every SQL backend.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
