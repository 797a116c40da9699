package models

import "time"

// Letter is a dated journal note kept next to the ledger.
type Letter struct {
	Base
	Date time.Time `gorm:"type:date;not null;index" json:"date"`
	Body string    `gorm:"type:text;not null" json:"body"`
	Tags string    `gorm:"size:200" json:"tags"`
}
