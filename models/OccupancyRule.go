package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OccupancyRule kicks in once the property's occupancy for the night reaches
// ThresholdPercent. RoomTypeID nil means all room types.
type OccupancyRule struct {
	gorm.Model
	RoomTypeID       *uint           `json:"roomTypeId" gorm:"index"`
	ThresholdPercent int             `json:"thresholdPercent" gorm:"not null"` // 0..100
	ModifierType     string          `json:"modifierType" gorm:"type:varchar(20);not null"` // percentage, fixed, absolute
	ModifierValue    decimal.Decimal `json:"modifierValue" gorm:"type:decimal(12,4);not null"`
	Priority         int             `json:"priority" gorm:"default:0;index"`
	Status           string          `json:"status" gorm:"type:varchar(20);default:'active';index"` // active, inactive
}
