package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Currency holds the current exchange rate relative to the property's base
// currency (the one with IsDefault true, whose rate is always 1).
type Currency struct {
	gorm.Model
	Code          string          `json:"code" gorm:"type:varchar(3);uniqueIndex;not null"`
	Name          string          `json:"name" gorm:"type:varchar(50);not null"`
	Symbol        string          `json:"symbol" gorm:"type:varchar(10)"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate" gorm:"type:decimal(18,8);not null"`
	DecimalPlaces int32           `json:"decimalPlaces" gorm:"default:2"`
	IsDefault     bool            `json:"isDefault" gorm:"default:false;index"`
	IsActive      bool            `json:"isActive" gorm:"default:true;index"`
}

// ExchangeRateHistory rows are append-only. Rate updates never rewrite a
// prior row; they insert a new one with the source that produced it.
type ExchangeRateHistory struct {
	ID            uint            `json:"id" gorm:"primarykey"`
	CurrencyCode  string          `json:"currencyCode" gorm:"type:varchar(3);index;not null"`
	Rate          decimal.Decimal `json:"rate" gorm:"type:decimal(18,8);not null"`
	Source        string          `json:"source" gorm:"type:varchar(50)"` // manual, ota_sync, import
	EffectiveDate time.Time       `json:"effectiveDate" gorm:"index;not null"`
	CreatedAt     time.Time       `json:"createdAt"`
}
