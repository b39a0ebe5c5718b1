package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Modifier types shared by every rate rule entity.
const (
	ModifierPercentage = "percentage"
	ModifierFixed      = "fixed"
	ModifierAbsolute   = "absolute"
)

type RatePlan struct {
	gorm.Model
	Code          string          `json:"code" gorm:"type:varchar(30);uniqueIndex;not null"`
	Name          string          `json:"name" gorm:"type:varchar(100);not null"`
	Description   string          `json:"description" gorm:"type:text"`
	ModifierType  string          `json:"modifierType" gorm:"type:varchar(20);not null"` // percentage, fixed, absolute
	ModifierValue decimal.Decimal `json:"modifierValue" gorm:"type:decimal(12,4);not null"`
	MinStay       int             `json:"minStay" gorm:"default:0"`
	MaxStay       int             `json:"maxStay" gorm:"default:0"` // 0 = no cap
	Priority      int             `json:"priority" gorm:"default:0;index"`
	Status        string          `json:"status" gorm:"type:varchar(20);default:'active';index"` // active, inactive
}

func ValidModifierType(s string) bool {
	switch s {
	case ModifierPercentage, ModifierFixed, ModifierAbsolute:
		return true
	}
	return false
}
