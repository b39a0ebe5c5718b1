package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DowRule adjusts the rate for one weekday. RoomTypeID nil means the rule
// applies to every room type.
type DowRule struct {
	gorm.Model
	DayOfWeek     int             `json:"dayOfWeek" gorm:"not null;index"` // 0 = Sunday .. 6 = Saturday
	RoomTypeID    *uint           `json:"roomTypeId" gorm:"index"`
	ModifierType  string          `json:"modifierType" gorm:"type:varchar(20);not null"` // percentage, fixed, absolute
	ModifierValue decimal.Decimal `json:"modifierValue" gorm:"type:decimal(12,4);not null"`
	Status        string          `json:"status" gorm:"type:varchar(20);default:'active';index"` // active, inactive
}
