package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodType is the recurrence of a category budget and, for reports, the
// report granularity.
type PeriodType string

const (
	PeriodWeekly  PeriodType = "W"
	PeriodMonthly PeriodType = "M"
	PeriodYearly  PeriodType = "Y"
)

// Valid reports whether p is one of the three known period types.
func (p PeriodType) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Category is a named budget bucket. The name is the primary key and is
// referenced by transactions, so it never changes after creation.
// A negative budget is anticipated income, a non-negative one planned expense.
type Category struct {
	Name       string          `gorm:"primaryKey;size:200" json:"name"`
	Type       PeriodType      `gorm:"size:1;not null" json:"type"`
	Budget     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"budget"`
	ParentName *string         `gorm:"size:200;index" json:"parent,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
