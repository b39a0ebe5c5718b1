package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Tax scopes. A tax either hits every folio line or only one charge category.
const (
	TaxAppliesAll        = "all"
	TaxAppliesRoomCharge = "room_charge"
	TaxAppliesExtra      = "extra"
	TaxAppliesService    = "service"
)

type Tax struct {
	gorm.Model
	Name      string          `json:"name" gorm:"type:varchar(100);not null"`
	Rate      decimal.Decimal `json:"rate" gorm:"type:decimal(12,4);not null"`
	Type      string          `json:"type" gorm:"type:varchar(20);not null"`       // percentage, fixed
	AppliesTo string          `json:"appliesTo" gorm:"type:varchar(20);not null"`  // all, room_charge, extra, service
	IsActive  bool            `json:"isActive" gorm:"default:true;index"`
	SortOrder int             `json:"sortOrder" gorm:"default:0;index"`
}

func ValidTaxAppliesTo(s string) bool {
	switch s {
	case TaxAppliesAll, TaxAppliesRoomCharge, TaxAppliesExtra, TaxAppliesService:
		return true
	}
	return false
}
